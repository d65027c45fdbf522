// Package errors provides the standardized error taxonomy of the form.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Validation failures are user-correctable and never block editing.
const (
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodeLocationNotSelected    ErrorCode = "LOCATION_NOT_SELECTED"
	ErrCodePayloadSchemaViolation ErrorCode = "PAYLOAD_SCHEMA_VIOLATION"
)

// Location-capability failures stay inside the map panel.
const (
	ErrCodeGeolocationPermissionDenied ErrorCode = "GEOLOCATION_PERMISSION_DENIED"
	ErrCodeGeolocationUnavailable      ErrorCode = "GEOLOCATION_UNAVAILABLE"
	ErrCodeGeolocationTimeout          ErrorCode = "GEOLOCATION_TIMEOUT"
	ErrCodeGeolocationUnknown          ErrorCode = "GEOLOCATION_UNKNOWN"
	ErrCodeGeolocationUnsupported      ErrorCode = "GEOLOCATION_UNSUPPORTED"
	ErrCodeGeolocationInFlight         ErrorCode = "GEOLOCATION_IN_FLIGHT"
)

// Submission failures end one attempt; the user may retry manually.
const (
	ErrCodeSubmissionFailed   ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSubmissionTimeout  ErrorCode = "SUBMISSION_TIMEOUT"
	ErrCodeSubmissionInFlight ErrorCode = "SUBMISSION_IN_FLIGHT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable field validation error.
func NewValidationFailedError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Form validation failed",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationNotSelectedError is returned when a location is confirmed before a marker exists.
func NewLocationNotSelectedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotSelected,
		Message:   "No marker placed on the map",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadSchemaViolationError creates a non-retryable payload error.
func NewPayloadSchemaViolationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadSchemaViolation,
		Message:   "Submission payload does not match schema",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeolocationError creates an error for a failed device location query.
func NewGeolocationError(code ErrorCode, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   "Geolocation request failed",
		Details:   details,
		Retryable: code == ErrCodeGeolocationTimeout || code == ErrCodeGeolocationUnavailable,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSubmissionFailedError creates a retryable submission error.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Submission request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSubmissionTimeoutError creates a retryable submission timeout error.
func NewSubmissionTimeoutError(timeout time.Duration, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionTimeout,
		Message:   "Submission request timed out",
		Details:   fmt.Sprintf("timeout: %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSubmissionInFlightError is returned when a submit overlaps a pending one.
func NewSubmissionInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInFlight,
		Message:   "A submission is already in progress",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsRetryableErrorCode reports whether the user can sensibly retry the action.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeSubmissionFailed,
		ErrCodeSubmissionTimeout,
		ErrCodeGeolocationTimeout,
		ErrCodeGeolocationUnavailable:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "GEOLOCATION"), strings.HasPrefix(codeStr, "LOCATION"):
		return "LOCATION"
	case strings.HasPrefix(codeStr, "SUBMISSION"):
		return "SUBMISSION"
	case strings.Contains(codeStr, "VALIDATION"), strings.Contains(codeStr, "SCHEMA"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
