package web

import (
	"errors"
	"net/http"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// Result 统一的响应格式，Code 为 0 表示成功
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// FieldError 校验失败的字段
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func writeOK[T any](ctx *gin.Context, data T) {
	ctx.JSON(http.StatusOK, Result[T]{Msg: "OK", Data: data})
}

// writeErr 把业务错误映射为 HTTP 状态码
func writeErr(ctx *gin.Context, err error) {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		fields := make([]FieldError, 0, len(ve.FieldErrors()))
		for _, f := range ve.FieldErrors() {
			fields = append(fields, FieldError{Field: f.Field, Reason: f.Reason})
		}
		ctx.JSON(http.StatusBadRequest, Result[[]FieldError]{
			Code: http.StatusBadRequest,
			Msg:  err.Error(),
			Data: fields,
		})
		return
	}

	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		elog.DefaultLogger.Error("请求处理失败",
			elog.String("path", ctx.FullPath()),
			elog.FieldErr(err))
		msg = "系统错误"
	}
	ctx.JSON(code, Result[any]{Code: code, Msg: msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnknownEvent),
		errors.Is(err, errs.ErrNotificationTypeNotFound),
		errors.Is(err, errs.ErrDeliveryRecordNotFound),
		errors.Is(err, errs.ErrRestrictionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotificationTypeVersionMismatch),
		errors.Is(err, errs.ErrSettingsVersionConflict),
		errors.Is(err, errs.ErrDeliveryAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, errs.ErrRegistryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func bindErr(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, Result[any]{Code: http.StatusBadRequest, Msg: "请求格式错误: " + err.Error()})
}
