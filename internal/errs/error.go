package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrValidation       = errors.New("校验失败")

	ErrUnknownEvent        = errors.New("未注册的事件")
	ErrRegistryUnavailable = errors.New("事件源不可用")
	ErrEventDuplicate      = errors.New("事件主键冲突")

	ErrNotificationTypeNotFound        = errors.New("通知类型不存在")
	ErrNotificationTypeVersionMismatch = errors.New("通知类型版本不匹配")

	ErrDeliveryRecordNotFound  = errors.New("投递记录不存在")
	ErrDeliveryRecordDuplicate = errors.New("投递记录主键冲突")
	ErrDeliveryAlreadyResolved = errors.New("投递记录已经有最终状态")
	ErrChannelDeliveryFailure  = errors.New("渠道投递失败")
	ErrNoAvailableChannel      = errors.New("无可用渠道")

	ErrSettingsVersionConflict = errors.New("聊天配置版本冲突")
	ErrRestrictionNotFound     = errors.New("聊天限制不存在")
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field  string
	Reason string
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

// ValidationError 汇总所有不合法的字段，而不是只报告第一个
type ValidationError struct {
	errs *multierror.Error
}

// NewValidationError 没有任何字段错误时返回 nil
func NewValidationError(fields ...FieldError) error {
	var res *multierror.Error
	for i := range fields {
		f := fields[i]
		res = multierror.Append(res, &f)
	}
	if res.ErrorOrNil() == nil {
		return nil
	}
	res.ErrorFormat = func(es []error) string {
		msgs := make([]string, 0, len(es))
		for _, e := range es {
			msgs = append(msgs, e.Error())
		}
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, "; "))
	}
	return &ValidationError{errs: res}
}

func (v *ValidationError) Error() string {
	return v.errs.Error()
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Fields 返回所有出错的字段名
func (v *ValidationError) Fields() []string {
	res := make([]string, 0, len(v.errs.Errors))
	for _, e := range v.errs.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			res = append(res, fe.Field)
		}
	}
	return res
}

// FieldErrors 返回所有字段错误的明细
func (v *ValidationError) FieldErrors() []FieldError {
	res := make([]FieldError, 0, len(v.errs.Errors))
	for _, e := range v.errs.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			res = append(res, *fe)
		}
	}
	return res
}
