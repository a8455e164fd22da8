package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Service error codes. Every failure surfaced by the domain services carries
// exactly one of these.
const (
	CodeNotFound     = "notFound"
	CodeInvalidState = "invalidState"
	CodeConflict     = "conflict"
	CodeValidation   = "validation"
	CodeForbidden    = "forbidden"
)

// ServiceError is a typed failure with a human-readable reason.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFoundError signals that a referenced record does not exist.
func NewNotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

// NewInvalidStateError signals an operation attempted from a state that
// forbids it (e.g. refunding an already-refunded payment).
func NewInvalidStateError(msg string) error {
	return &ServiceError{Code: CodeInvalidState, Message: msg}
}

// NewConflictError signals a slot overlap or an unavailable hour.
func NewConflictError(msg string) error {
	return &ServiceError{Code: CodeConflict, Message: msg}
}

// NewValidationError signals malformed input.
func NewValidationError(msg string) error {
	return &ServiceError{Code: CodeValidation, Message: msg}
}

// NewForbiddenError signals that the caller lacks standing for the operation.
func NewForbiddenError(msg string) error {
	return &ServiceError{Code: CodeForbidden, Message: msg}
}

// HasCode reports whether err is (or wraps) a ServiceError with the given code.
func HasCode(err error, code string) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Code == code
}

// HTTPStatus maps a service error to its HTTP status code. Unrecognized
// errors map to 500.
func HTTPStatus(err error) int {
	var se *ServiceError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidState:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
