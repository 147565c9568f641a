package api

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of an application error.
// The set is closed: every error raised by business logic belongs to
// exactly one category, and the transport layer maps each category to
// an HTTP status exhaustively.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeForbidden  ErrorType = "forbidden"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeServer     ErrorType = "server"
)

// Error is the typed application error that flows unmodified from business
// logic to the centralized transport translator.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Status returns the HTTP status code for the error category.
func (e *Error) Status() int {
	switch e.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeAuth:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeServer:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Operational reports whether the error is an expected, user-facing failure.
// Server errors are unexpected faults: the translator logs them in full and
// returns only a generic message to the client.
func (e *Error) Operational() bool {
	return e.Type != ErrorTypeServer
}

// NewValidationError creates an Error for a failed request validation rule.
func NewValidationError(message string) *Error {
	return &Error{Type: ErrorTypeValidation, Message: message}
}

// NewAuthError creates an Error for failed authentication. The same fixed
// messages are used for missing users and wrong passwords so that responses
// do not reveal which part of the credentials was wrong.
func NewAuthError(message string) *Error {
	return &Error{Type: ErrorTypeAuth, Message: message}
}

// NewForbiddenError creates an Error for an ownership mismatch.
func NewForbiddenError(message string) *Error {
	return &Error{Type: ErrorTypeForbidden, Message: message}
}

// NewNotFoundError creates an Error for an absent resource.
func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrorTypeNotFound, Message: message}
}

// NewServerError creates an Error for an unexpected internal fault.
func NewServerError(message string) *Error {
	return &Error{Type: ErrorTypeServer, Message: message}
}
