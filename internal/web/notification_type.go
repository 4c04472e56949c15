package web

import (
	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/service/notificationtype"
	"github.com/gin-gonic/gin"
)

type NotificationTypeHandler struct {
	svc notificationtype.Service
}

func NewNotificationTypeHandler(svc notificationtype.Service) *NotificationTypeHandler {
	return &NotificationTypeHandler{svc: svc}
}

func (h *NotificationTypeHandler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/notification-types")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/toggle", h.Toggle)
}

func (h *NotificationTypeHandler) List(ctx *gin.Context) {
	active, err := queryBool(ctx, "active")
	if err != nil {
		writeErr(ctx, err)
		return
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		writeErr(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErr(ctx, err)
		return
	}
	list, err := h.svc.List(ctx.Request.Context(), domain.NotificationTypeFilter{
		Search: ctx.Query("search"),
		Role:   domain.Role(ctx.Query("role")),
		Active: active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, list)
}

func (h *NotificationTypeHandler) Create(ctx *gin.Context) {
	var req domain.NotificationType
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindErr(ctx, err)
		return
	}
	created, err := h.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, created)
}

func (h *NotificationTypeHandler) Get(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	nt, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, nt)
}

func (h *NotificationTypeHandler) Update(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	var patch domain.NotificationTypePatch
	if err = ctx.ShouldBindJSON(&patch); err != nil {
		bindErr(ctx, err)
		return
	}
	updated, err := h.svc.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, updated)
}

func (h *NotificationTypeHandler) Delete(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK[any](ctx, nil)
}

type ToggleResp struct {
	IsActive bool `json:"isActive"`
}

func (h *NotificationTypeHandler) Toggle(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	active, err := h.svc.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, ToggleResp{IsActive: active})
}
