// Package errors provides centralized error definitions and error handling
// utilities for the azctx codebase. It defines sentinel errors for the
// storage and Azure CLI subsystems, domain error types with context wrapping,
// and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - StoreError: errors reading or writing the contexts file
//   - AzureError: errors invoking the Azure CLI
//   - ContextError: errors concerning a specific saved context
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input (context id/name format)
//   - TimeoutError: an Azure CLI call exceeded its deadline
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewStoreError("failed to parse contexts file", errors.ErrStoreCorrupted)
//	err = err.WithPath(path)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrContextNotFound) { ... }
//
//	var azErr *errors.AzureError
//	if errors.As(err, &azErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Store-related sentinel errors
var (
	// ErrContextNotFound indicates that no saved context has the requested id.
	ErrContextNotFound = New("context not found")
	// ErrDuplicateContext indicates that a context with the same id already exists.
	ErrDuplicateContext = New("context id already exists")
	// ErrStoreCorrupted indicates that the contexts file could not be parsed at all.
	ErrStoreCorrupted = New("contexts file corrupted")
	// ErrStorePartial indicates that some entries in the contexts file were
	// malformed and skipped; the returned records are the valid subset.
	ErrStorePartial = New("contexts file partially unreadable")
	// ErrEmptyStore indicates that no contexts have been saved yet.
	ErrEmptyStore = New("no saved contexts")
)

// Azure CLI sentinel errors
var (
	// ErrAzureCLINotFound indicates that the az binary is not installed or not on PATH.
	ErrAzureCLINotFound = New("azure cli not found")
	// ErrNoActiveSession indicates that no Azure account is logged in.
	ErrNoActiveSession = New("no active azure session")
	// ErrCommandFailed indicates that an Azure CLI invocation failed.
	ErrCommandFailed = New("azure cli command failed")
	// ErrVerificationFailed indicates that the Azure CLI reported success but
	// the post-switch account query disagrees with the requested target.
	ErrVerificationFailed = New("switch verification failed")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCancelled indicates that the user cancelled an interactive operation.
	ErrCancelled = New("operation cancelled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// AzctxError is the base interface for all azctx errors. It extends the
// standard error interface with methods for classification.
type AzctxError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsRetryable() bool  { return e.retryable }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// StoreError represents errors reading or writing the contexts file.
//
// Example:
//
//	err := errors.NewStoreError("failed to parse contexts file", errors.ErrStoreCorrupted)
//	err = err.WithPath("/home/me/.azctx/contexts.yaml")
type StoreError struct {
	baseError
	Path    string
	Skipped int // Number of malformed entries skipped during load
}

// NewStoreError creates a new StoreError.
func NewStoreError(message string, cause error) *StoreError {
	return &StoreError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithPath adds the contexts file path to the error context.
func (e *StoreError) WithPath(path string) *StoreError {
	e.Path = path
	return e
}

// WithSkipped records how many malformed entries were skipped.
func (e *StoreError) WithSkipped(n int) *StoreError {
	e.Skipped = n
	return e
}

// WithSeverity sets the error severity.
func (e *StoreError) WithSeverity(s Severity) *StoreError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped=%d", e.Skipped))
	}

	prefix := "store error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("store error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *StoreError) Is(target error) bool {
	if _, ok := target.(*StoreError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AzureError represents errors invoking the Azure CLI.
//
// Example:
//
//	err := errors.NewAzureError("account set failed", errors.ErrCommandFailed)
//	err = err.WithCommand("account set").WithStderr(stderr)
type AzureError struct {
	baseError
	Command string
	Stderr  string
}

// NewAzureError creates a new AzureError.
func NewAzureError(message string, cause error) *AzureError {
	return &AzureError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithCommand adds the az subcommand to the error context.
func (e *AzureError) WithCommand(command string) *AzureError {
	e.Command = command
	return e
}

// WithStderr adds captured stderr output to the error context.
func (e *AzureError) WithStderr(stderr string) *AzureError {
	e.Stderr = strings.TrimSpace(stderr)
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *AzureError) WithRetryable(r bool) *AzureError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *AzureError) Error() string {
	prefix := "azure cli error"
	if e.Command != "" {
		prefix = fmt.Sprintf("azure cli error [command=az %s]", e.Command)
	}

	msg := e.message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s\nstderr: %s", msg, e.Stderr)
	}

	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *AzureError) Is(target error) bool {
	if _, ok := target.(*AzureError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ContextError represents errors concerning a specific saved context.
//
// Example:
//
//	err := errors.NewContextError("cannot delete", errors.ErrContextNotFound).WithContextID("DEV")
type ContextError struct {
	baseError
	ContextID string
}

// NewContextError creates a new ContextError.
func NewContextError(message string, cause error) *ContextError {
	return &ContextError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithContextID adds a context id to the error context.
func (e *ContextError) WithContextID(id string) *ContextError {
	e.ContextID = id
	return e
}

// Error returns the formatted error message.
func (e *ContextError) Error() string {
	prefix := "context error"
	if e.ContextID != "" {
		prefix = fmt.Sprintf("context error [id=%s]", e.ContextID)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ContextError) Is(target error) bool {
	if _, ok := target.(*ContextError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("context id must be 1-20 characters")
//	err = err.WithField("context_id").WithValue(input)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an Azure CLI call that exceeded its deadline.
//
// Example:
//
//	err := errors.NewTimeoutError("az account show", 5*time.Second)
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // Timeouts are generally retryable
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var azctxErr AzctxError
	if As(err, &azctxErr) {
		return azctxErr.IsRetryable()
	}

	return Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var azctxErr AzctxError
	if As(err, &azctxErr) {
		return azctxErr.IsUserFacing()
	}

	var validation *ValidationError
	var timeout *TimeoutError
	return As(err, &validation) || As(err, &timeout)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement AzctxError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var azctxErr AzctxError
	if As(err, &azctxErr) {
		return azctxErr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
