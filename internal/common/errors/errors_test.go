package errors

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeGeolocationTimeout, "LOCATION"},
		{ErrCodeLocationNotSelected, "LOCATION"},
		{ErrCodeSubmissionInFlight, "SUBMISSION"},
		{ErrCodeValidationFailed, "VALIDATION"},
		{ErrCodePayloadSchemaViolation, "VALIDATION"},
		{"INTERNAL_ERROR", "OTHER"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeSubmissionTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeGeolocationPermissionDenied))

	assert.True(t, NewGeolocationError(ErrCodeGeolocationUnavailable, nil).Retryable)
	assert.False(t, NewGeolocationError(ErrCodeGeolocationPermissionDenied, nil).Retryable)
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := NewSubmissionTimeoutError(15*time.Second, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "timeout: 15s", err.Details)
	assert.Equal(t, "StandardError[SUBMISSION_TIMEOUT]: Submission request timed out", err.Error())
}

// === Test Helper Functions ===

type captureLogger struct {
	msg    string
	fields map[string]interface{}
}

func (c *captureLogger) Error(msg string, fields map[string]interface{}) {
	c.msg = msg
	c.fields = fields
}

func TestHandle(t *testing.T) {
	log := &captureLogger{}
	h := NewErrorHandler(log)

	got := h.Handle("submit", NewValidationFailedError("age-1", "out of range"))

	assert.Equal(t, ErrCodeValidationFailed, got.Code)
	assert.Equal(t, "operation failed", log.msg)
	assert.Equal(t, "submit", log.fields["operation"])
	assert.Equal(t, "age-1", log.fields["field"])
	assert.Equal(t, "VALIDATION", log.fields["errorCategory"])
}

func TestHandle_WrapsPlainErrors(t *testing.T) {
	log := &captureLogger{}
	cause := stderrors.New("boom")

	got := NewErrorHandler(log).Handle("render", cause)

	require.NotNil(t, got)
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, "boom", log.fields["details"])
}
