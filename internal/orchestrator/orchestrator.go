// Package orchestrator sequences context store operations against the
// Azure CLI. Each exported method performs one complete user-visible
// operation and returns a terminal Outcome; rendering and exit codes are
// the caller's concern.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Iron-Ham/azctx/internal/azcli"
	"github.com/Iron-Ham/azctx/internal/contexts"
	errs "github.com/Iron-Ham/azctx/internal/errors"
	"github.com/Iron-Ham/azctx/internal/logging"
)

// AzureCLI is the subset of the az adapter the orchestrator needs.
type AzureCLI interface {
	IsAvailable(ctx context.Context) bool
	CurrentAccount(ctx context.Context) (*azcli.Account, error)
	SetAccount(ctx context.Context, subscriptionID string) error
}

// ContextStore is the subset of the contexts store the orchestrator needs.
type ContextStore interface {
	Load() ([]contexts.Context, error)
	Add(record contexts.Context) error
	Delete(contextID string) error
}

// Orchestrator coordinates the store and the Azure CLI. It holds no state
// across operations; every method re-reads the store and re-queries az.
type Orchestrator struct {
	store  ContextStore
	cli    AzureCLI
	logger *logging.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *logging.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an Orchestrator over the given store and CLI adapter.
func New(store ContextStore, cli AzureCLI, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:  store,
		cli:    cli,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AddCurrent saves the currently active Azure account under the given
// context id and name. A missing CLI or logged-out session is reported
// before input validation: nothing downstream can succeed without them.
func (o *Orchestrator) AddCurrent(ctx context.Context, contextID, contextName string) Outcome {
	log := o.logger.WithOperation("add").WithContextID(contextID)

	if !o.cli.IsAvailable(ctx) {
		return o.cliMissing(log)
	}

	account, err := o.cli.CurrentAccount(ctx)
	if err != nil {
		return o.accountFailure(log, err)
	}

	if err := contexts.ValidateContextID(contextID); err != nil {
		return failure(KindInvalidFormat, invalidIDMessage(contextID), err)
	}
	if err := contexts.ValidateContextName(contextName); err != nil {
		return failure(KindInvalidFormat, "Context name must be between 1 and 100 characters.", err)
	}

	records, err := o.store.Load()
	if err != nil && !errs.Is(err, errs.ErrStorePartial) {
		log.Error("contexts file unreadable", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}
	if existing := findManaging(records, account); existing != nil {
		log.Info("account already managed", "existing_id", existing.ContextID)
		out := failure(KindAlreadyManaged,
			fmt.Sprintf("This account is already saved as %q (%s).", existing.ContextName, existing.ContextID),
			errs.ErrDuplicateContext)
		out.Context = existing
		out.Account = account
		return out
	}

	record := contexts.New(contextID, contextName,
		account.ID, account.Name, account.TenantID, account.TenantDisplayName, account.User.Name)
	if err := o.store.Add(record); err != nil {
		if errs.Is(err, errs.ErrDuplicateContext) {
			return failure(KindDuplicateID,
				fmt.Sprintf("A context with id %q already exists.", contextID), err)
		}
		log.Error("failed to save context", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}

	log.Info("context added",
		"subscription_id", account.ID,
		"subscription_name", account.Name)
	out := success(KindAdded,
		fmt.Sprintf("Saved context %q (%s) for subscription %s.", contextName, contextID, account.Name))
	out.Context = &record
	out.Account = account
	return out
}

// SwitchByID switches the active Azure account to the context with the
// given id. Leading and trailing whitespace in the identifier is ignored;
// matching is case-sensitive.
func (o *Orchestrator) SwitchByID(ctx context.Context, contextID string) Outcome {
	contextID = strings.TrimSpace(contextID)
	log := o.logger.WithOperation("switch").WithContextID(contextID)

	if contextID == "" {
		return failure(KindInvalidFormat, "Context id must not be empty.",
			errs.NewValidationError("context id must not be empty").WithField("context_id"))
	}

	if !o.cli.IsAvailable(ctx) {
		return o.cliMissing(log)
	}

	records, err := o.store.Load()
	if err != nil && !errs.Is(err, errs.ErrStorePartial) {
		log.Error("contexts file unreadable", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}
	if len(records) == 0 {
		return emptyStore()
	}

	target := findByID(records, contextID)
	if target == nil {
		candidates := idsOf(records)
		log.Warn("context not found", "candidates", len(candidates))
		out := failure(KindNotFound,
			fmt.Sprintf("No context with id %q. Saved contexts: %s.",
				contextID, strings.Join(candidates, ", ")),
			errs.NewContextError("no saved context with this id", errs.ErrContextNotFound).
				WithContextID(contextID))
		out.Candidates = candidates
		return out
	}

	return o.switchTo(ctx, log, target)
}

// SwitchTo switches the active Azure account to an already-resolved
// record, typically one the user picked interactively.
func (o *Orchestrator) SwitchTo(ctx context.Context, record contexts.Context) Outcome {
	log := o.logger.WithOperation("switch").WithContextID(record.ContextID)
	if !o.cli.IsAvailable(ctx) {
		return o.cliMissing(log)
	}
	return o.switchTo(ctx, log, &record)
}

// switchTo performs the set-and-verify sequence shared by direct and
// interactive switches. Availability has already been checked.
func (o *Orchestrator) switchTo(ctx context.Context, log *logging.Logger, target *contexts.Context) Outcome {
	current, err := o.cli.CurrentAccount(ctx)
	if err != nil {
		// An unknown or absent current account does not block the switch;
		// it only disables the already-active short-circuit.
		log.Debug("current account unavailable before switch", "error", err)
	}
	if current != nil && current.ID == target.SubscriptionID {
		log.Info("context already active")
		out := success(KindAlreadyActive,
			fmt.Sprintf("Context %q (%s) is already active.", target.ContextName, target.ContextID))
		out.Context = target
		out.Account = current
		return out
	}

	if err := o.cli.SetAccount(ctx, target.SubscriptionID); err != nil {
		log.Error("account set failed", "error", err)
		return failure(KindCommandFailed,
			fmt.Sprintf("Failed to switch to subscription %s: %v", target.SubscriptionID, err), err)
	}

	after, err := o.cli.CurrentAccount(ctx)
	if err != nil || after.ID != target.SubscriptionID {
		if err == nil {
			err = errs.NewAzureError("active account does not match the requested subscription",
				errs.ErrVerificationFailed).WithCommand("account show")
		}
		log.Error("post-switch verification failed", "error", err)
		return failure(KindVerificationFailed,
			fmt.Sprintf("Switch to %q was issued but could not be verified.", target.ContextID),
			errs.Wrap(err, "post-switch verification"))
	}

	log.Info("context switched", "subscription_id", target.SubscriptionID)
	out := success(KindSwitched,
		fmt.Sprintf("Switched to context %q (%s).", target.ContextName, target.ContextID))
	out.Context = target
	out.Account = after
	return out
}

// List returns the saved contexts. With verbose set the full records are
// attached; otherwise only the (id, name) summaries. An empty store is an
// empty success, and a partially readable store still lists, with a
// warning carried in the message.
func (o *Orchestrator) List(verbose bool) Outcome {
	log := o.logger.WithOperation("list")

	records, err := o.store.Load()
	degraded := errs.Is(err, errs.ErrStorePartial)
	if err != nil && !degraded {
		log.Error("contexts file unreadable", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}

	out := success(KindListed, "")
	if degraded {
		log.Warn("listing degraded store", "error", err)
		out.Message = "Some entries in the contexts file could not be read and are not shown."
	}
	if verbose {
		out.Contexts = records
	} else {
		out.Summaries = make([]Summary, 0, len(records))
		for _, r := range records {
			out.Summaries = append(out.Summaries, Summary{
				ContextID:   r.ContextID,
				ContextName: r.ContextName,
			})
		}
	}
	return out
}

// Status reports whether the active Azure account corresponds to a saved
// context. A managed account yields the matching record; an unmanaged one
// yields only the live account details.
func (o *Orchestrator) Status(ctx context.Context) Outcome {
	log := o.logger.WithOperation("status")

	if !o.cli.IsAvailable(ctx) {
		return o.cliMissing(log)
	}

	account, err := o.cli.CurrentAccount(ctx)
	if err != nil {
		return o.accountFailure(log, err)
	}

	records, err := o.store.Load()
	if err != nil && !errs.Is(err, errs.ErrStorePartial) {
		log.Error("contexts file unreadable", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}

	if match := findBySubscription(records, account.ID); match != nil {
		out := success(KindManaged,
			fmt.Sprintf("Active context: %q (%s).", match.ContextName, match.ContextID))
		out.Context = match
		out.Account = account
		return out
	}

	out := success(KindUnmanaged,
		fmt.Sprintf("Subscription %q is active but not saved as a context.", account.Name))
	out.Account = account
	return out
}

// Delete removes the context with the given id from the store.
func (o *Orchestrator) Delete(contextID string) Outcome {
	log := o.logger.WithOperation("delete").WithContextID(contextID)

	records, err := o.store.Load()
	if err != nil && !errs.Is(err, errs.ErrStorePartial) {
		log.Error("contexts file unreadable", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}
	if len(records) == 0 {
		return emptyStore()
	}

	target := findByID(records, contextID)
	if target == nil {
		out := failure(KindNotFound,
			fmt.Sprintf("No context with id %q.", contextID),
			errs.NewContextError("no saved context with this id", errs.ErrContextNotFound).
				WithContextID(contextID))
		out.Candidates = idsOf(records)
		return out
	}

	if err := o.store.Delete(contextID); err != nil {
		log.Error("failed to delete context", "error", err)
		return failure(KindStorageError, storageMessage(err), err)
	}

	log.Info("context deleted")
	out := success(KindDeleted,
		fmt.Sprintf("Deleted context %q (%s).", target.ContextName, target.ContextID))
	out.Context = target
	return out
}

func (o *Orchestrator) cliMissing(log *logging.Logger) Outcome {
	log.Error("azure cli not available")
	return failure(KindAzureCLIMissing,
		"Azure CLI (az) was not found. Install it from https://aka.ms/azure-cli and try again.",
		errs.ErrAzureCLINotFound)
}

func (o *Orchestrator) accountFailure(log *logging.Logger, err error) Outcome {
	if errs.Is(err, errs.ErrNoActiveSession) {
		log.Warn("no active azure session")
		return failure(KindNoActiveSession,
			"No active Azure session. Run 'az login' first.", err)
	}
	log.Error("account query failed", "error", err)
	return failure(KindCommandFailed,
		fmt.Sprintf("Failed to query the active account: %v", err), err)
}

func emptyStore() Outcome {
	return failure(KindEmptyStore,
		"No saved contexts. Use 'azctx add' to save your current context first.",
		errs.ErrEmptyStore)
}

func storageMessage(err error) string {
	return fmt.Sprintf("Could not read the contexts file: %v", err)
}

func invalidIDMessage(contextID string) string {
	return fmt.Sprintf(
		"Invalid context id %q: ids are 1-20 characters of letters, digits, '_' or '-'.", contextID)
}

// findByID returns the record with the given id, or nil. Matching is
// case-sensitive.
func findByID(records []contexts.Context, contextID string) *contexts.Context {
	for i := range records {
		if records[i].ContextID == contextID {
			return &records[i]
		}
	}
	return nil
}

// findBySubscription returns the record whose subscription id matches, or
// nil. Status only cares which subscription is active, not who is signed in.
func findBySubscription(records []contexts.Context, subscriptionID string) *contexts.Context {
	for i := range records {
		if records[i].SubscriptionID == subscriptionID {
			return &records[i]
		}
	}
	return nil
}

// findManaging returns the saved record for the given live account, or
// nil. Used when adding: a record covers an account only when
// subscription, tenant and signed-in user all match.
func findManaging(records []contexts.Context, account *azcli.Account) *contexts.Context {
	for i := range records {
		r := &records[i]
		if r.SubscriptionID == account.ID &&
			r.TenantID == account.TenantID &&
			r.Username == account.User.Name {
			return r
		}
	}
	return nil
}

// idsOf returns the ids of the given records in sorted order.
func idsOf(records []contexts.Context) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ContextID)
	}
	sort.Strings(ids)
	return ids
}
