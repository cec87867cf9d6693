package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError for the HTTP layer.
type Kind int

const (
	KindServer Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
)

// AppError is the typed error every service returns for expected failures.
// Anything else reaching the HTTP layer is reported as a 500.
type AppError struct {
	Kind    Kind
	Message string
	// UpstreamStatus carries the third-party HTTP status for KindUpstream.
	UpstreamStatus int
	Err            error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind onto a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(msg string) *AppError   { return &AppError{Kind: KindBadRequest, Message: msg} }
func Unauthorized(msg string) *AppError { return &AppError{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *AppError    { return &AppError{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *AppError     { return &AppError{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *AppError     { return &AppError{Kind: KindConflict, Message: msg} }

func Upstream(status int, msg string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: msg, UpstreamStatus: status, Err: err}
}

func ServerError(msg string, err error) *AppError {
	return &AppError{Kind: KindServer, Message: msg, Err: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
