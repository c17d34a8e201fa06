package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindRateLimited     Kind = "rate_limited"
	KindUpstream        Kind = "upstream"
	KindInternal        Kind = "internal"
)

// Error is a classified error. Message is safe to show to clients; Err is
// the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Upstream wraps a failure of an external service.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal
// when there is none. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrUnauthenticated = NewError(KindUnauthenticated, "未授权访问", nil)
	ErrForbidden       = NewError(KindForbidden, "权限不足", nil)

	ErrUserNotFound = NewError(KindNotFound, "用户不存在", nil)

	ErrApplicationNotFound   = NewError(KindNotFound, "申请不存在", nil)
	ErrApplicationExists     = NewError(KindConflict, "已存在待审核的创作者申请", nil)
	ErrApplicationNotPending = NewError(KindConflict, "申请已被处理", nil)
	ErrAlreadyCreator        = NewError(KindConflict, "用户已是创作者", nil)

	ErrSolutionNotFound = NewError(KindNotFound, "解决方案不存在", nil)

	ErrSyncInProgress = NewError(KindConflict, "同步任务正在运行", nil)

	ErrRateLimited = NewError(KindRateLimited, "请求过于频繁，请稍后再试", nil)
)
