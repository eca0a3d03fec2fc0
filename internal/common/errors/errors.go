// Package errors provides the advisor's error taxonomy.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCatalogFetchFailed        ErrorCode = "CATALOG_FETCH_FAILED"
	ErrCodePredictionServerError     ErrorCode = "PREDICTION_SERVER_ERROR"
	ErrCodePredictionTransportFailed ErrorCode = "PREDICTION_TRANSPORT_FAILED"
	ErrCodePreconditionViolation     ErrorCode = "PRECONDITION_VIOLATION"
	ErrCodeEmptyUtterance            ErrorCode = "EMPTY_UTTERANCE"
	ErrCodeSubmissionInFlight        ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrCodeInternal                  ErrorCode = "INTERNAL_ERROR"
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
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Fields flattens the error for structured logging.
func (e *StandardError) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"errorCode":     string(e.Code),
		"errorCategory": GetErrorCategory(e.Code),
		"message":       e.Message,
		"retryable":     e.Retryable,
	}
	if e.Details != "" {
		fields["details"] = e.Details
	}
	for k, v := range e.Metadata {
		fields[k] = v
	}
	return fields
}

func newError(code ErrorCode, message string, cause error) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Nothing in the advisor retries on its own; every retry is a user re-submit,
// so all constructors leave Retryable false.

// NewCatalogFetchFailedError reports a catalog load that will be replaced by its fallback.
func NewCatalogFetchFailedError(catalog, endpoint string, err error) *StandardError {
	e := newError(ErrCodeCatalogFetchFailed, fmt.Sprintf("catalog %q unavailable, using fallback", catalog), err)
	e.Metadata = map[string]interface{}{"catalog": catalog, "endpoint": endpoint}
	return e
}

// NewPredictionServerError wraps an application-level error message returned by the backend.
func NewPredictionServerError(form string, status int, serverMessage string) *StandardError {
	e := newError(ErrCodePredictionServerError, serverMessage, nil)
	e.Metadata = map[string]interface{}{"form": form, "status": status}
	return e
}

// NewPredictionTransportError reports a prediction request that produced no usable response.
func NewPredictionTransportError(form string, err error) *StandardError {
	e := newError(ErrCodePredictionTransportFailed, "prediction backend unreachable", err)
	e.Metadata = map[string]interface{}{"form": form}
	return e
}

// NewPreconditionViolationError reports a missing UI mount point or collaborator.
func NewPreconditionViolationError(what string) *StandardError {
	return newError(ErrCodePreconditionViolation, "missing required collaborator", fmt.Errorf("%s is nil", what))
}

// NewEmptyUtteranceError rejects blank chat input.
func NewEmptyUtteranceError() *StandardError {
	return newError(ErrCodeEmptyUtterance, "utterance is empty", nil)
}

// NewSubmissionInFlightError rejects a submit while the previous one is pending.
func NewSubmissionInFlightError(form string) *StandardError {
	e := newError(ErrCodeSubmissionInFlight, "a submission is already in flight", nil)
	e.Metadata = map[string]interface{}{"form": form}
	return e
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "unexpected error", err)
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "PREDICTION"), strings.HasPrefix(codeStr, "SUBMISSION"):
		return "PREDICTION"
	case strings.Contains(codeStr, "UTTERANCE"):
		return "CHAT"
	case strings.Contains(codeStr, "PRECONDITION"):
		return "UI"
	default:
		return "OTHER"
	}
}
