package web

import (
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/service/ledger"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type DeliveryHandler struct {
	svc ledger.Service
}

func NewDeliveryHandler(svc ledger.Service) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

func (h *DeliveryHandler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/deliveries")
	g.GET("", h.List)
	g.GET("/export", h.Export)
	g.GET("/stats", h.Stats)
	g.GET("/:id", h.Get)
	g.POST("/:id/result", h.Resolve)
}

func (h *DeliveryHandler) filter(ctx *gin.Context) (domain.DeliveryFilter, error) {
	typeID, err := queryUint64(ctx, "notificationTypeId")
	if err != nil {
		return domain.DeliveryFilter{}, err
	}
	from, err := queryInt64(ctx, "sentFrom")
	if err != nil {
		return domain.DeliveryFilter{}, err
	}
	to, err := queryInt64(ctx, "sentTo")
	if err != nil {
		return domain.DeliveryFilter{}, err
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		return domain.DeliveryFilter{}, err
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return domain.DeliveryFilter{}, err
	}
	return domain.DeliveryFilter{
		NotificationTypeID: typeID,
		Channel:            domain.Channel(ctx.Query("channel")),
		Status:             domain.DeliveryStatus(ctx.Query("status")),
		RecipientRole:      domain.Role(ctx.Query("recipientRole")),
		RecipientUserID:    ctx.Query("recipientUserId"),
		EmissionID:         ctx.Query("emissionId"),
		SentFrom:           from,
		SentTo:             to,
		Offset:             offset,
		Limit:              limit,
	}, nil
}

type ListDeliveriesResp struct {
	Total   int64                   `json:"total"`
	Records []domain.DeliveryRecord `json:"records"`
}

func (h *DeliveryHandler) List(ctx *gin.Context) {
	f, err := h.filter(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	records, total, err := h.svc.List(ctx.Request.Context(), f)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, ListDeliveriesResp{Total: total, Records: records})
}

func (h *DeliveryHandler) Get(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	r, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, r)
}

// Export 导出 CSV。已经开始写响应之后再出错就只能记日志了
func (h *DeliveryHandler) Export(ctx *gin.Context) {
	f, err := h.filter(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	name := fmt.Sprintf("deliveries-%s.csv", time.Now().UTC().Format("20060102150405"))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	err = h.svc.Export(ctx.Request.Context(), f, ctx.Writer)
	if err == nil {
		return
	}
	if !ctx.Writer.Written() {
		ctx.Header("Content-Type", "application/json; charset=utf-8")
		ctx.Header("Content-Disposition", "")
		writeErr(ctx, err)
		return
	}
	elog.DefaultLogger.Error("导出投递记录失败", elog.FieldErr(err))
}

func (h *DeliveryHandler) Stats(ctx *gin.Context) {
	f, err := h.filter(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	stats, err := h.svc.Stats(ctx.Request.Context(), f)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, stats)
}

type ResolveReq struct {
	Status       domain.DeliveryStatus `json:"status" binding:"required"`
	ErrorMessage string                `json:"errorMessage"`
}

// Resolve 异步渠道回写投递结果
func (h *DeliveryHandler) Resolve(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	var req ResolveReq
	if err = ctx.ShouldBindJSON(&req); err != nil {
		bindErr(ctx, err)
		return
	}
	r, err := h.svc.Resolve(ctx.Request.Context(), id, req.Status, req.ErrorMessage)
	if err != nil {
		writeErr(ctx, err)
		return
	}
	writeOK(ctx, r)
}
