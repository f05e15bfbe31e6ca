package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// StoreError Tests
// -----------------------------------------------------------------------------

func TestNewStoreError(t *testing.T) {
	cause := ErrStoreCorrupted
	err := NewStoreError("failed to parse contexts file", cause)

	if err.message != "failed to parse contexts file" {
		t.Errorf("message = %q, want %q", err.message, "failed to parse contexts file")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestStoreError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StoreError
		want string
	}{
		{
			name: "message only",
			err:  NewStoreError("write failed", nil),
			want: "store error: write failed",
		},
		{
			name: "with path",
			err:  NewStoreError("write failed", nil).WithPath("/tmp/contexts.yaml"),
			want: "store error [path=/tmp/contexts.yaml]: write failed",
		},
		{
			name: "with path and skipped",
			err:  NewStoreError("partial load", nil).WithPath("/tmp/c.yaml").WithSkipped(2),
			want: "store error [path=/tmp/c.yaml, skipped=2]: partial load",
		},
		{
			name: "with cause",
			err:  NewStoreError("load failed", ErrStoreCorrupted),
			want: "store error: load failed: contexts file corrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreError_Is(t *testing.T) {
	err := NewStoreError("load failed", ErrStorePartial)

	if !errors.Is(err, ErrStorePartial) {
		t.Error("errors.Is(err, ErrStorePartial) = false, want true")
	}
	if errors.Is(err, ErrStoreCorrupted) {
		t.Error("errors.Is(err, ErrStoreCorrupted) = true, want false")
	}

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Error("errors.As(err, *StoreError) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// AzureError Tests
// -----------------------------------------------------------------------------

func TestAzureError_Error(t *testing.T) {
	err := NewAzureError("account set failed", ErrCommandFailed).
		WithCommand("account set").
		WithStderr("ERROR: subscription not found\n")

	got := err.Error()
	if !strings.Contains(got, "azure cli error [command=az account set]") {
		t.Errorf("Error() = %q, missing command prefix", got)
	}
	if !strings.Contains(got, "stderr: ERROR: subscription not found") {
		t.Errorf("Error() = %q, missing trimmed stderr", got)
	}
}

func TestAzureError_Is(t *testing.T) {
	err := NewAzureError("show failed", ErrNoActiveSession)

	if !errors.Is(err, ErrNoActiveSession) {
		t.Error("errors.Is(err, ErrNoActiveSession) = false, want true")
	}
	if errors.Is(err, ErrCommandFailed) {
		t.Error("errors.Is(err, ErrCommandFailed) = true, want false")
	}
}

func TestAzureError_WithRetryable(t *testing.T) {
	err := NewAzureError("transient", ErrCommandFailed).WithRetryable(true)
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false, want true")
	}
}

// -----------------------------------------------------------------------------
// ContextError Tests
// -----------------------------------------------------------------------------

func TestContextError_Error(t *testing.T) {
	err := NewContextError("cannot delete", ErrContextNotFound).WithContextID("DEV")

	want := "context error [id=DEV]: cannot delete: context not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("id must be 1-20 characters").
		WithField("context_id").
		WithValue("this-id-is-way-too-long-to-be-valid")

	got := err.Error()
	if !strings.HasPrefix(got, "validation error [field=context_id, value=") {
		t.Errorf("Error() = %q, want field/value prefix", got)
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("bad input")

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("errors.Is(err, ErrInvalidInput) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// TimeoutError Tests
// -----------------------------------------------------------------------------

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("az account show", 5*time.Second)

	want := "timeout error: az account show (timeout: 5s)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrTimeout) {
		t.Error("errors.Is(err, ErrTimeout) = false, want true")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false, want true")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"timeout error", NewTimeoutError("op", time.Second), true},
		{"wrapped ErrTimeout", fmt.Errorf("call: %w", ErrTimeout), true},
		{"store error", NewStoreError("x", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true, want false")
	}
	if IsUserFacing(errors.New("internal")) {
		t.Error("IsUserFacing(plain) = true, want false")
	}
	if !IsUserFacing(NewAzureError("failed", nil)) {
		t.Error("IsUserFacing(AzureError) = false, want true")
	}
	if !IsUserFacing(NewValidationError("bad")) {
		t.Error("IsUserFacing(ValidationError) = false, want true")
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(errors.New("boom")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(NewContextError("x", nil)); got != SeverityWarning {
		t.Errorf("GetSeverity(ContextError) = %v, want %v", got, SeverityWarning)
	}
}

// -----------------------------------------------------------------------------
// Wrap Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) != nil")
	}

	base := ErrContextNotFound
	err := Wrap(base, "deleting")
	if !errors.Is(err, base) {
		t.Error("wrapped error lost its cause")
	}
	if err.Error() != "deleting: context not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrDuplicateContext, "adding %q", "DEV")
	if !errors.Is(err, ErrDuplicateContext) {
		t.Error("wrapped error lost its cause")
	}
	if err.Error() != `adding "DEV": context id already exists` {
		t.Errorf("Error() = %q", err.Error())
	}
}
