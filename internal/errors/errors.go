// FilePath: internal/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeStorage       ErrorType = "storage_failure"
	ErrorTypeAuth          ErrorType = "authentication"
	ErrorTypeAuthorize     ErrorType = "authorization_denied"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeExpired       ErrorType = "expired"
	ErrorTypeExhausted     ErrorType = "exhausted"
	ErrorTypeAlreadyMember ErrorType = "already_member"
	ErrorTypeNetwork       ErrorType = "network_failure"
	ErrorTypeInternal      ErrorType = "internal"
)

// APIError represents a structured API error
type APIError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the internal error for errors.Is/As chains
func (e *APIError) Unwrap() error {
	return e.err
}

// WithRequestID adds a request ID to the error
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewStorageError creates a new storage failure error
func NewStorageError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeStorage,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeAuth,
		Message: msg,
		Code:    http.StatusUnauthorized,
		err:     err,
	}
}

// NewAuthorizationError creates a new authorization error.
// Role policy rejections must surface as this type so clients can
// distinguish them from network failures.
func NewAuthorizationError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeAuthorize,
		Message: msg,
		Code:    http.StatusForbidden,
		err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: msg,
		Code:    http.StatusNotFound,
		err:     err,
	}
}

// NewExpiredError creates an error for a sharing code past its expiry
func NewExpiredError(msg string) *APIError {
	return &APIError{
		Type:    ErrorTypeExpired,
		Message: msg,
		Code:    http.StatusGone,
	}
}

// NewExhaustedError creates an error for a sharing code at its use limit
func NewExhaustedError(msg string) *APIError {
	return &APIError{
		Type:    ErrorTypeExhausted,
		Message: msg,
		Code:    http.StatusGone,
	}
}

// NewAlreadyMemberError signals an idempotent redemption by an existing member
func NewAlreadyMemberError(msg string) *APIError {
	return &APIError{
		Type:    ErrorTypeAlreadyMember,
		Message: msg,
		Code:    http.StatusConflict,
	}
}

// NewNetworkError creates a new network failure error
func NewNetworkError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeNetwork,
		Message: msg,
		Code:    http.StatusBadGateway,
		err:     err,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInternal,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsAuthorization checks if an error is an authorization rejection
func IsAuthorization(err error) bool {
	return isType(err, ErrorTypeAuthorize)
}

// IsAlreadyMember checks if an error is an idempotent already-member outcome
func IsAlreadyMember(err error) bool {
	return isType(err, ErrorTypeAlreadyMember)
}

func isType(err error, t ErrorType) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == t
	}
	return false
}
