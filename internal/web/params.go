package web

import (
	"fmt"
	"strconv"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/gin-gonic/gin"
)

func pathID(ctx *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: 非法的 id %q", errs.ErrInvalidParameter, ctx.Param("id"))
	}
	return id, nil
}

func queryInt(ctx *gin.Context, key string) (int, error) {
	val := ctx.Query(key)
	if val == "" {
		return 0, nil
	}
	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s 必须是整数", errs.ErrInvalidParameter, key)
	}
	return res, nil
}

func queryInt64(ctx *gin.Context, key string) (int64, error) {
	val := ctx.Query(key)
	if val == "" {
		return 0, nil
	}
	res, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s 必须是整数", errs.ErrInvalidParameter, key)
	}
	return res, nil
}

func queryUint64(ctx *gin.Context, key string) (uint64, error) {
	val := ctx.Query(key)
	if val == "" {
		return 0, nil
	}
	res, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s 必须是正整数", errs.ErrInvalidParameter, key)
	}
	return res, nil
}

// queryBool 没有传时返回 nil
func queryBool(ctx *gin.Context, key string) (*bool, error) {
	val := ctx.Query(key)
	if val == "" {
		return nil, nil
	}
	res, err := strconv.ParseBool(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %s 必须是 true 或者 false", errs.ErrInvalidParameter, key)
	}
	return &res, nil
}
