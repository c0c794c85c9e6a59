package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the benchmark timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrTaskLimit is returned by a spawner that refuses to start another
// concurrent task.
var ErrTaskLimit = errors.New("concurrent task limit reached")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// DimensionError reports a matrix whose order or backing length is unusable:
// a non-positive order, a slice that is not n*n long, or operands of
// different orders.
type DimensionError struct {
	// Operand names the offending matrix ("A", "B", "C" or "n").
	Operand string
	// Want is the expected value (order or element count).
	Want int
	// Got is the value that was found.
	Got int
}

// Error returns a formatted message describing the dimension mismatch.
func (e DimensionError) Error() string {
	if e.Operand == "n" {
		return fmt.Sprintf("invalid dimension: order must be positive, got %d", e.Got)
	}
	return fmt.Sprintf("invalid dimension for %s: want %d, got %d", e.Operand, e.Want, e.Got)
}

// TaskLaunchError reports a block whose task could not be started or did not
// run to completion. The output matrix is incomplete when this error is
// returned and must be discarded.
type TaskLaunchError struct {
	// Row and Col are the top-left coordinates of the affected block.
	Row, Col int
	// Cause is the underlying failure.
	Cause error
}

// Error returns a formatted message naming the block.
func (e TaskLaunchError) Error() string {
	return fmt.Sprintf("task for block (%d,%d) failed: %v", e.Row, e.Col, e.Cause)
}

// Unwrap returns the underlying cause.
func (e TaskLaunchError) Unwrap() error { return e.Cause }

// TimeoutError represents a benchmark timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// VerificationError reports the first cell where two multiplication results
// disagree.
type VerificationError struct {
	// BlockSize is the block size under which the mismatch was observed.
	BlockSize int
	// Strategy names the result compared against the reference.
	Strategy string
	// Index is the flat row-major index of the first differing cell.
	Index int
	// Want and Got are the reference and observed values.
	Want, Got int32
}

// Error returns a formatted message describing the mismatch.
func (e VerificationError) Error() string {
	return fmt.Sprintf("%s result differs at index %d for block size %d: want %d, got %d",
		e.Strategy, e.Index, e.BlockSize, e.Want, e.Got)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
