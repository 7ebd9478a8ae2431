package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error so the transport layer can pick a status code
// and clients can decide whether to retry, shorten input, or give up.
type Kind string

const (
	KindInvalidArgument   Kind = "invalid_argument"
	KindNotFound          Kind = "not_found"
	KindInactiveSession   Kind = "inactive_session"
	KindUpstreamTransient Kind = "upstream_transient"
	KindUpstreamMalformed Kind = "upstream_malformed_output"
	KindTimeout           Kind = "timeout"
	KindInternal          Kind = "internal"
)

// AppError is the single error type services return upward. Details carry
// triage context (session id, message index, transcript length) without
// leaking upstream secrets.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// WithDetail attaches a diagnostic field and returns the same error for chaining.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// KindOf extracts the Kind from any error chain. Unknown errors are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the response status used by the
// error handler middleware.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidArgument, KindInactiveSession:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUpstreamTransient:
		return fiber.StatusServiceUnavailable
	case KindUpstreamMalformed:
		return fiber.StatusBadGateway
	case KindTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
