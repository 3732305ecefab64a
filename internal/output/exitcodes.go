// Package output provides structured output and error handling for the groundwork CLI.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (bad input, invalid option, nothing to go back to)
// 2 = I/O error (unreadable catalog, failed save)
const (
	ExitSuccess   = 0
	ExitUserError = 1
	ExitIOError   = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, rejected answers, empty queue or undo stack.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   cause,
	}
}

// NewIOError creates an error for filesystem failures (exit code 2).
// Use for: catalog load failures, answer store or profile save failures.
func NewIOError(message string) *ExitError {
	return &ExitError{
		Code:    ExitIOError,
		Message: message,
	}
}

// NewIOErrorWithCause creates an I/O error wrapping an underlying cause.
func NewIOErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitIOError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}
