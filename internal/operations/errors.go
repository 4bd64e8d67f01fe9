package operations

import (
	"context"
	"errors"
	"fmt"

	"indicatorcli/internal/dataprocessing"
)

// ErrorType represents the type of operation error
type ErrorType string

const (
	ErrorTypeInput        ErrorType = "input"
	ErrorTypeCollision    ErrorType = "collision"
	ErrorTypeOutput       ErrorType = "output"
	ErrorTypeConfig       ErrorType = "config"
	ErrorTypeInvalidState ErrorType = "invalid_state"
	ErrorTypeCancellation ErrorType = "cancellation"
)

// OperationError represents a fatal error of a combine run
type OperationError struct {
	Type    ErrorType              `json:"type"`
	Step    string                 `json:"step,omitempty"`
	Message string                 `json:"message"`
	Cause   error                  `json:"cause,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Step != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Step, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewInputError reports a source directory or file that cannot be read
func NewInputError(step string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeInput,
		Step:    step,
		Message: "failed to read sources",
		Cause:   cause,
	}
}

// NewCollisionError reports two sources disagreeing on a variable
func NewCollisionError(step string, cause error) *OperationError {
	oe := &OperationError{
		Type:    ErrorTypeCollision,
		Step:    step,
		Message: "conflicting values for a variable",
		Cause:   cause,
	}
	var collision *dataprocessing.ColumnCollisionError
	if errors.As(cause, &collision) {
		oe.Context = map[string]interface{}{
			"variable": collision.Variable,
			"date":     collision.Date.Format(dataprocessing.DateLayout),
			"existing": collision.Existing,
			"incoming": collision.Incoming,
		}
	}
	return oe
}

// NewOutputError reports a failure to write a group's output
func NewOutputError(step, path string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeOutput,
		Step:    step,
		Message: "failed to write output",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewConfigError reports unusable configuration
func NewConfigError(message string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeConfig,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidStateError reports an illegal group state transition
func NewInvalidStateError(step string, from, to GroupState) *OperationError {
	return &OperationError{
		Type:    ErrorTypeInvalidState,
		Step:    step,
		Message: fmt.Sprintf("cannot move from %s to %s", from, to),
		Context: map[string]interface{}{
			"from": string(from),
			"to":   string(to),
		},
	}
}

// NewCancellationError reports a run stopped by its context
func NewCancellationError(step string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeCancellation,
		Step:    step,
		Message: "operation was cancelled",
		Cause:   cause,
	}
}

// classifyAccumulateError maps an error from the group fold to its operation error
func classifyAccumulateError(step string, err error) *OperationError {
	switch {
	case dataprocessing.IsCollision(err):
		return NewCollisionError(step, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewCancellationError(step, err)
	default:
		return NewInputError(step, err)
	}
}

// GetErrorType returns the type of the error, or "" when err is not an OperationError
func GetErrorType(err error) ErrorType {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe.Type
	}
	return ""
}
