package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCreatorNotFound is returned when a creator is not found.
	ErrCreatorNotFound = errors.New("creator not found")
	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = errors.New("message not found")
	// ErrAccountNotFound is returned when no account matches the login input.
	ErrAccountNotFound = errors.New("no account found")
	// ErrSlugTaken is returned when the requested creator slug already exists.
	ErrSlugTaken = errors.New("this link is already taken")
	// ErrAlreadyRegistered is returned when the college UID or email is taken.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrUnauthorized is returned on a missing, expired or incorrect session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidOTP is returned when the one-time code is wrong or expired.
	ErrInvalidOTP = errors.New("invalid or expired code")
	// ErrUpstreamUnavailable marks a failed external probe. It is handled by
	// the fail-open paths and never reaches an HTTP response.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ValidationError carries the offending field alongside the reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		he := NewHTTPError(http.StatusBadRequest, ve.Reason, "VALIDATION_FAILED")
		he.Field = ve.Field
		return he
	}

	switch {
	case errors.Is(err, ErrCreatorNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CREATOR_NOT_FOUND")
	case errors.Is(err, ErrMessageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MESSAGE_NOT_FOUND")
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrSlugTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_TAKEN")
	case errors.Is(err, ErrAlreadyRegistered):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_REGISTERED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidOTP):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_OTP")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
