// File: utils/apperrors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes surfaced to API callers.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeInvalidState     = "INVALID_STATE"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
)

// AppError is a coded service error that handlers map onto HTTP statuses.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationError reports malformed input.
func ValidationError(format string, args ...any) error {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// CapacityExceededError reports that a slot cannot absorb the requested units.
func CapacityExceededError(format string, args ...any) error {
	return &AppError{Code: CodeCapacityExceeded, Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports a transition that is not legal from the current status.
func InvalidStateError(format string, args ...any) error {
	return &AppError{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError reports that the actor lacks rights over the entity.
func ForbiddenError(format string, args ...any) error {
	return &AppError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown entity id.
func NotFoundError(format string, args ...any) error {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the application error code, or "" for uncoded errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HTTPStatus maps an error to the HTTP status handlers should return.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeCapacityExceeded, CodeInvalidState:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
