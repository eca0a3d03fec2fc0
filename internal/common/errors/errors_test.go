package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name     string
		err      *StandardError
		code     ErrorCode
		category string
	}{
		{"catalog", NewCatalogFetchFailedError("flat", "/meta", cause), ErrCodeCatalogFetchFailed, "CATALOG"},
		{"server", NewPredictionServerError("crop", 400, "invalid input"), ErrCodePredictionServerError, "PREDICTION"},
		{"transport", NewPredictionTransportError("crop", cause), ErrCodePredictionTransportFailed, "PREDICTION"},
		{"in flight", NewSubmissionInFlightError("crop"), ErrCodeSubmissionInFlight, "PREDICTION"},
		{"empty", NewEmptyUtteranceError(), ErrCodeEmptyUtterance, "CHAT"},
		{"precondition", NewPreconditionViolationError("chat box"), ErrCodePreconditionViolation, "UI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.False(t, tt.err.Retryable)
			assert.Equal(t, tt.category, GetErrorCategory(tt.err.Code))
			assert.True(t, IsCode(fmt.Errorf("wrapped: %w", tt.err), tt.code))
			assert.Equal(t, string(tt.code), tt.err.Fields()["errorCode"])
		})
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("timeout")
	err := NewPredictionTransportError("crop", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)

	orig := NewEmptyUtteranceError()
	assert.Same(t, orig, Normalize(fmt.Errorf("x: %w", orig)))
}
