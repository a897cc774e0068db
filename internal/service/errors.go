// Package service holds the application operations behind the HTTP handlers.
package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hongminglow/atithi-inn/internal/models"
)

// Kind classifies a service failure; each kind maps to one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Machine-readable codes clients branch on.
const (
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeMissingCredentials      = "MISSING_CREDENTIALS"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeUserExists              = "USER_EXISTS"
	CodeAdminExists             = "ADMIN_EXISTS"
	CodeNoToken                 = "NO_TOKEN_PROVIDED"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeInvalidTokenFormat      = "INVALID_TOKEN_FORMAT"
	CodeInvalidToken            = "INVALID_TOKEN"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeAdminNotFound           = "ADMIN_NOT_FOUND"
	CodeInvalidAdminSecret      = "INVALID_ADMIN_SECRET"
	CodeAdminAccessRequired     = "ADMIN_ACCESS_REQUIRED"
	CodeForbidden               = "FORBIDDEN"
	CodeHotelNotFound           = "HOTEL_NOT_FOUND"
	CodeRoomNotFound            = "ROOM_NOT_FOUND"
	CodeBookingNotFound         = "BOOKING_NOT_FOUND"
	CodeInvalidID               = "INVALID_ID"
	CodeUnsupportedFilter       = "UNSUPPORTED_FILTER"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeNoRooms                 = "NO_ROOMS"
	CodeRoomHotelMismatch       = "ROOM_HOTEL_MISMATCH"
	CodeServerError             = "SERVER_ERROR"
)

// Error is the error type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err, wrapping anything else as internal.
func AsError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return internal(err)
}

func invalid(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// invalidField converts an entity validation failure.
func invalidField(err error) *Error {
	var fe *models.FieldError
	if errors.As(err, &fe) {
		return &Error{Kind: KindValidation, Code: CodeValidationFailed, Message: fe.Message, Field: fe.Field}
	}
	return &Error{Kind: KindValidation, Code: CodeValidationFailed, Message: err.Error()}
}

func unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func notFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func conflict(code, field, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Field: field, Message: message}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeServerError, Message: "Server error", Err: err}
}
