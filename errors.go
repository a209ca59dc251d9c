package comptool

import (
	"errors"
	"fmt"
)

// Sentinel errors for comptool. Use errors.Is to check.
var (
	ErrToolNotFound    = errors.New("tool not found")
	ErrTimeout         = errors.New("tool execution timeout")
	ErrValidation      = errors.New("validation failed")
	ErrShutdown        = errors.New("registry is shutting down")
	ErrMissingMethod   = errors.New("output has no method bound")
	ErrUnknownInput    = errors.New("input is not declared on the component")
	ErrBadMethod       = errors.New("unsupported method signature")
	ErrSchedulerClosed = errors.New("scheduler is closed")
)

// ConfigError reports a misconfigured component output found during toolkit
// assembly. Assembly is all-or-nothing: a single ConfigError aborts
// GetTools with no partial toolkit, since a silently incomplete tool
// surface is worse than none.
// Err wraps a sentinel (ErrMissingMethod, ErrUnknownInput, ErrBadMethod)
// for errors.Is/errors.As.
type ConfigError struct {
	Component string
	Output    string
	Reason    string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("component %q output %q: %s", e.Component, e.Output, e.Reason)
}

// Unwrap supports errors.Is/errors.As on wrapped chains.
func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError rejects caller-supplied arguments at the tool boundary,
// before the bound method runs. The message is safe to hand back to the
// LLM for self-correction.
type ValidationError struct {
	Reason string
	Err    error // wrapped sentinel (ErrValidation) for errors.Is
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tool input: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// SchedulerError reports a failure to detect or use a cooperative scheduler
// during the asynchronous invocation path. It is adapter-internal and never
// masks an error raised by the method body itself: when both occur, the
// method's error wins.
type SchedulerError struct {
	Err error
}

func (e *SchedulerError) Error() string {
	return "scheduler failure during tool invocation"
}

func (e *SchedulerError) Unwrap() error { return e.Err }

// SystemError represents an internal failure (e.g. a recovered panic).
// The LLM should not see the underlying error message or stack.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return "internal system error during tool execution"
}

func (e *SystemError) Unwrap() error { return e.Err }

// IsConfigError returns true if err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSchedulerError returns true if err is or wraps a SchedulerError.
func IsSchedulerError(err error) bool {
	var se *SchedulerError
	return errors.As(err, &se)
}

// IsSystemError returns true if err is or wraps a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}
