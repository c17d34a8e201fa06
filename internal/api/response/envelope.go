// Package response builds the uniform JSON envelope every endpoint returns:
//
//	{"success": true,  "data": ..., "message": "..."}
//	{"success": false, "error": "...", "detail": {"kind": "...", "message": "..."}}
//
// The HTTP status travels with the envelope but is not serialised.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/core/domain"
)

// MsgInternal is the only message clients see for unexpected failures.
const MsgInternal = "服务器内部错误"

// ErrorDetail classifies a failure without exposing its cause.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Envelope is the wire shape of every response.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Detail  *ErrorDetail `json:"detail,omitempty"`

	status int
}

// Success wraps data in a 200 envelope. Nil data is sent as an empty object
// so a success always carries data.
func Success(data any, message string) Envelope {
	if data == nil {
		data = struct{}{}
	}
	return Envelope{Success: true, Data: data, Message: message, status: http.StatusOK}
}

// Failure builds an error envelope. A status outside 4xx/5xx becomes 500 and
// an empty message falls back to the status text.
func Failure(message string, status int, detail *ErrorDetail) Envelope {
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return Envelope{Success: false, Error: message, Detail: detail, status: status}
}

// WithStatus overrides the status if it agrees with the success flag;
// otherwise e is returned unchanged.
func (e Envelope) WithStatus(status int) Envelope {
	ok := status >= 200 && status < 300
	if e.Success == ok && (ok || (status >= 400 && status <= 599)) {
		e.status = status
	}
	return e
}

// Status is the HTTP status code for e.
func (e Envelope) Status() int {
	if e.status == 0 {
		if e.Success {
			return http.StatusOK
		}
		return http.StatusInternalServerError
	}
	return e.status
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// KindFor is the inverse of StatusFor for transport-level errors.
func KindFor(status int) domain.Kind {
	switch {
	case status == http.StatusUnauthorized:
		return domain.KindUnauthenticated
	case status == http.StatusForbidden:
		return domain.KindForbidden
	case status == http.StatusNotFound:
		return domain.KindNotFound
	case status == http.StatusConflict:
		return domain.KindConflict
	case status == http.StatusTooManyRequests:
		return domain.KindRateLimited
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return domain.KindUpstream
	case status >= 400 && status < 500:
		return domain.KindValidation
	default:
		return domain.KindInternal
	}
}

// DetailFrom classifies err for clients: its kind and public message only.
// Wrapped causes never appear in the result.
func DetailFrom(err error) *ErrorDetail {
	var de *domain.Error
	if errors.As(err, &de) {
		msg := de.Message
		if de.Kind == domain.KindInternal {
			msg = MsgInternal
		}
		return &ErrorDetail{Kind: string(de.Kind), Message: msg}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code >= 500 {
			msg = MsgInternal
		}
		return &ErrorDetail{Kind: string(KindFor(he.Code)), Message: msg}
	}

	return &ErrorDetail{Kind: string(domain.KindInternal), Message: MsgInternal}
}

// FromError converts err into a failure envelope. Only the public message of
// a classified error reaches the client; anything else becomes MsgInternal.
func FromError(err error) Envelope {
	detail := DetailFrom(err)

	status := http.StatusInternalServerError
	var he *echo.HTTPError
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		status = StatusFor(de.Kind)
	case errors.As(err, &he):
		status = he.Code
	}
	return Failure(detail.Message, status, detail)
}

// Write renders e as JSON.
func Write(c echo.Context, e Envelope) error {
	return c.JSON(e.Status(), e)
}

// OK writes a 200 success envelope.
func OK(c echo.Context, data any, message string) error {
	return Write(c, Success(data, message))
}

// Created writes a 201 success envelope.
func Created(c echo.Context, data any, message string) error {
	return Write(c, Success(data, message).WithStatus(http.StatusCreated))
}
