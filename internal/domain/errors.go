package domain

import (
	"errors"
	"fmt"
)

// 领域错误：由 service 返回，边界层按 errors.Is 分类
var (
	ErrCustomerNotFound   = errors.New("referenced customer not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidField       = errors.New("invalid field")
	ErrProfileHasListings = errors.New("customer profile still owns listings")
)

// ValidationError 携带出错字段与原始值，Unwrap 到对应哨兵错误
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation 判断是否为输入校验失败（枚举/字段）
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsClientError 调用方可修正的失败（引用不存在 / 校验失败 / 仍被引用）
func IsClientError(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProfileHasListings) ||
		IsValidation(err)
}

func invalidField(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Err: ErrInvalidField}
}
