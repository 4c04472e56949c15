package web

import (
	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/service/dispatch"
	"gitee.com/flycash/notification-policy/internal/service/registry"
	"gitee.com/flycash/notification-policy/internal/service/template"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	registry registry.Service
	engine   dispatch.Engine
	preview  *template.Preview
}

func NewEventHandler(reg registry.Service, engine dispatch.Engine, preview *template.Preview) *EventHandler {
	return &EventHandler{
		registry: reg,
		engine:   engine,
		preview:  preview,
	}
}

func (h *EventHandler) PublicRoutes(server *gin.Engine) {
	server.POST("/events/scan", h.Scan)
	server.GET("/events", h.List)
	server.DELETE("/events/:key", h.Purge)
	server.POST("/events/emit", h.Emit)
	server.GET("/template-variables", h.TemplateVariables)
	server.POST("/templates/preview", h.Preview)
}

type ScanResp struct {
	Success  bool                     `json:"success"`
	Events   []domain.EventDescriptor `json:"events"`
	Inserted []string                 `json:"inserted"`
	Skipped  []string                 `json:"skipped"`
}

func (h *EventHandler) Scan(ctx *gin.Context) {
	res, err := h.registry.Scan(ctx.Request.Context())
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, ScanResp{
		Success:  true,
		Events:   res.Events,
		Inserted: res.Inserted,
		Skipped:  res.Skipped,
	})
}

func (h *EventHandler) List(ctx *gin.Context) {
	events, err := h.registry.List(ctx.Request.Context())
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, events)
}

type EmitReq struct {
	EventType string         `json:"eventType" binding:"required"`
	Context   map[string]any `json:"context"`
}

type EmitResp struct {
	Records []domain.DeliveryRecord `json:"records"`
}

// Purge 管理员清理事件登记
func (h *EventHandler) Purge(ctx *gin.Context) {
	if err := h.registry.Purge(ctx.Request.Context(), ctx.Param("key")); err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK[any](ctx, nil)
}

// Emit 真实事件和运营手动发送测试通知共用
func (h *EventHandler) Emit(ctx *gin.Context) {
	var req EmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindErr(ctx, err)
		return
	}
	records, err := h.engine.Emit(ctx.Request.Context(), req.EventType, req.Context)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, EmitResp{Records: records})
}

func (h *EventHandler) TemplateVariables(ctx *gin.Context) {
	vars, err := h.registry.Catalog(ctx.Request.Context(), ctx.Query("eventType"))
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, vars)
}

type PreviewReq struct {
	EventType string         `json:"eventType" binding:"required"`
	Template  string         `json:"template"`
	Context   map[string]any `json:"context"`
}

type PreviewResp struct {
	Rendered string `json:"rendered"`
}

func (h *EventHandler) Preview(ctx *gin.Context) {
	var req PreviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindErr(ctx, err)
		return
	}
	rendered, err := h.preview.Render(ctx.Request.Context(), req.EventType, req.Template, req.Context)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, PreviewResp{Rendered: rendered})
}
