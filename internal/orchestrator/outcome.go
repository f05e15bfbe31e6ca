package orchestrator

import (
	"github.com/Iron-Ham/azctx/internal/azcli"
	"github.com/Iron-Ham/azctx/internal/contexts"
)

// Kind discriminates the possible results of an orchestrator operation.
// Every call site switches over the Kind rather than inspecting loose
// fields, so new outcomes surface as compile-visible cases.
type Kind int

const (
	// KindUnknown is the zero value; no operation produces it.
	KindUnknown Kind = iota

	// Success kinds

	// KindAdded indicates the current account was saved as a new context.
	KindAdded
	// KindSwitched indicates the active account was changed and verified.
	KindSwitched
	// KindAlreadyActive indicates the target context was already the active
	// account; no switch command was issued.
	KindAlreadyActive
	// KindListed carries the saved contexts (possibly none).
	KindListed
	// KindManaged indicates the active account matches a saved context.
	KindManaged
	// KindUnmanaged indicates the active account is not saved as a context.
	KindUnmanaged
	// KindDeleted indicates a context was removed from the store.
	KindDeleted

	// Failure kinds

	// KindInvalidFormat indicates a context id or name failed validation.
	KindInvalidFormat
	// KindDuplicateID indicates the requested context id is already taken.
	KindDuplicateID
	// KindAlreadyManaged indicates the current account is already saved
	// under another context; the existing record is attached.
	KindAlreadyManaged
	// KindNotFound indicates no saved context has the requested id; the
	// sorted candidate list is attached.
	KindNotFound
	// KindEmptyStore indicates no contexts have been saved yet.
	KindEmptyStore
	// KindAzureCLIMissing indicates the az binary cannot be invoked.
	// This is fatal for the whole invocation.
	KindAzureCLIMissing
	// KindNoActiveSession indicates no Azure account is logged in.
	KindNoActiveSession
	// KindCommandFailed indicates an az invocation errored or timed out.
	KindCommandFailed
	// KindVerificationFailed indicates az reported success but the
	// post-switch account query disagrees with the requested target.
	KindVerificationFailed
	// KindStorageError indicates the contexts file is unreadable.
	KindStorageError
)

// String returns the snake_case name of the kind, used in log entries.
func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindSwitched:
		return "switched"
	case KindAlreadyActive:
		return "already_active"
	case KindListed:
		return "listed"
	case KindManaged:
		return "managed"
	case KindUnmanaged:
		return "unmanaged"
	case KindDeleted:
		return "deleted"
	case KindInvalidFormat:
		return "invalid_format"
	case KindDuplicateID:
		return "duplicate_id"
	case KindAlreadyManaged:
		return "already_managed"
	case KindNotFound:
		return "not_found"
	case KindEmptyStore:
		return "empty_store"
	case KindAzureCLIMissing:
		return "azure_cli_missing"
	case KindNoActiveSession:
		return "no_active_session"
	case KindCommandFailed:
		return "command_failed"
	case KindVerificationFailed:
		return "verification_failed"
	case KindStorageError:
		return "storage_error"
	default:
		return "unknown"
	}
}

// Summary is the reduced (id, name) projection returned by List when the
// caller did not ask for full records.
type Summary struct {
	ContextID   string
	ContextName string
}

// Outcome is the structured result of one orchestrator operation. Exactly
// one operation produces it and it is terminal: the orchestrator holds no
// state across invocations.
//
// Field population depends on Kind: Context carries the acted-on record
// (Added, Switched, AlreadyActive, Managed, AlreadyManaged, Deleted);
// Account carries the live az account (Managed, Unmanaged); Candidates is
// the sorted id list attached to NotFound; Contexts/Summaries carry the
// collection for Listed.
type Outcome struct {
	OK         bool
	Kind       Kind
	Context    *contexts.Context
	Account    *azcli.Account
	Contexts   []contexts.Context
	Summaries  []Summary
	Candidates []string
	Message    string
	Err        error
}

// success builds a successful outcome.
func success(kind Kind, message string) Outcome {
	return Outcome{OK: true, Kind: kind, Message: message}
}

// failure builds a failed outcome.
func failure(kind Kind, message string, err error) Outcome {
	return Outcome{OK: false, Kind: kind, Message: message, Err: err}
}
