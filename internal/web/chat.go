package web

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/service/chatpolicy"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	admin     chatpolicy.AdminService
	evaluator chatpolicy.Evaluator
}

func NewChatHandler(admin chatpolicy.AdminService, evaluator chatpolicy.Evaluator) *ChatHandler {
	return &ChatHandler{
		admin:     admin,
		evaluator: evaluator,
	}
}

func (h *ChatHandler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/chat")
	g.GET("/permissions", h.GetMatrix)
	g.PUT("/permissions", h.ReplaceMatrix)
	g.PUT("/permissions/:from/:to", h.SaveCell)
	g.GET("/settings", h.GetSettings)
	g.PUT("/settings", h.SaveSettings)
	g.GET("/restrictions", h.ListRestrictions)
	g.POST("/restrictions", h.CreateRestriction)
	g.PUT("/restrictions/:id", h.UpdateRestriction)
	g.DELETE("/restrictions/:id", h.DeleteRestriction)
	g.POST("/can-initiate", h.CanInitiate)
	g.POST("/can-respond", h.CanRespond)
}

func (h *ChatHandler) GetMatrix(ctx *gin.Context) {
	m, err := h.admin.GetMatrix(ctx.Request.Context())
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, m)
}

func (h *ChatHandler) ReplaceMatrix(ctx *gin.Context) {
	var m domain.PermissionMatrix
	if err := ctx.ShouldBindJSON(&m); err != nil {
		bindErr(ctx, err)
		return
	}
	if err := h.admin.ReplaceMatrix(ctx.Request.Context(), m); err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, m)
}

func (h *ChatHandler) SaveCell(ctx *gin.Context) {
	var cell domain.PermissionCell
	if err := ctx.ShouldBindJSON(&cell); err != nil {
		bindErr(ctx, err)
		return
	}
	from, to := domain.Role(ctx.Param("from")), domain.Role(ctx.Param("to"))
	if err := h.admin.SaveCell(ctx.Request.Context(), from, to, cell); err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, cell)
}

func (h *ChatHandler) GetSettings(ctx *gin.Context) {
	s, err := h.admin.GetSettings(ctx.Request.Context())
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, s)
}

// SaveSettings 请求里的 version 必须是读到的版本号
func (h *ChatHandler) SaveSettings(ctx *gin.Context) {
	var s domain.ChatAvailabilitySettings
	if err := ctx.ShouldBindJSON(&s); err != nil {
		bindErr(ctx, err)
		return
	}
	saved, err := h.admin.SaveSettings(ctx.Request.Context(), s)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, saved)
}

func (h *ChatHandler) ListRestrictions(ctx *gin.Context) {
	list, err := h.admin.ListRestrictions(ctx.Request.Context(), domain.Role(ctx.Query("role")))
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, list)
}

func (h *ChatHandler) CreateRestriction(ctx *gin.Context) {
	var r domain.ChatRestriction
	if err := ctx.ShouldBindJSON(&r); err != nil {
		bindErr(ctx, err)
		return
	}
	created, err := h.admin.CreateRestriction(ctx.Request.Context(), r)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, created)
}

func (h *ChatHandler) UpdateRestriction(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	var r domain.ChatRestriction
	if err = ctx.ShouldBindJSON(&r); err != nil {
		bindErr(ctx, err)
		return
	}
	r.ID = id
	if err = h.admin.UpdateRestriction(ctx.Request.Context(), r); err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, r)
}

func (h *ChatHandler) DeleteRestriction(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	if err = h.admin.DeleteRestriction(ctx.Request.Context(), id); err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK[any](ctx, nil)
}

// ChatCheckReq 角色加上关系上下文
type ChatCheckReq struct {
	FromRole domain.Role `json:"fromRole" binding:"required"`
	ToRole   domain.Role `json:"toRole" binding:"required"`
	domain.ChatContext
}

func (h *ChatHandler) CanInitiate(ctx *gin.Context) {
	h.check(ctx, h.evaluator.CanInitiate)
}

func (h *ChatHandler) CanRespond(ctx *gin.Context) {
	h.check(ctx, h.evaluator.CanRespond)
}

func (h *ChatHandler) check(ctx *gin.Context,
	fn func(ctx context.Context, from, to domain.Role, cc domain.ChatContext) (domain.ChatDecision, error)) {
	var req ChatCheckReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindErr(ctx, err)
		return
	}
	d, err := fn(ctx.Request.Context(), req.FromRole, req.ToRole, req.ChatContext)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, d)
}
