package cmd

import (
	"errors"
	"fmt"

	"github.com/Iron-Ham/azctx/internal/contexts"
	errs "github.com/Iron-Ham/azctx/internal/errors"
	"github.com/Iron-Ham/azctx/internal/orchestrator"
	"github.com/Iron-Ham/azctx/internal/tui"
)

// renderedError marks a failure whose message was already printed, so
// main only assigns the exit code without printing again.
type renderedError struct{ err error }

func (e *renderedError) Error() string { return e.err.Error() }
func (e *renderedError) Unwrap() error { return e.err }

// Rendered reports whether the error's message was already printed.
func Rendered(err error) bool {
	var re *renderedError
	return errors.As(err, &re)
}

// renderOutcome prints the outcome's message and returns the error that
// should drive the process exit code. Messages are printed here exactly
// once; callers must not print again on failure.
func renderOutcome(out orchestrator.Outcome) error {
	switch {
	case out.OK:
		if out.Message != "" {
			fmt.Println(tui.SuccessLine(out.Message))
		}
		return nil

	case out.Kind == orchestrator.KindAlreadyManaged:
		// Informational rather than an error: the account is covered, just
		// under a different context id.
		fmt.Println(tui.WarningLine(out.Message))
		return nil

	default:
		fmt.Println(tui.ErrorLine(out.Message))
		return &renderedError{err: out.Err}
	}
}

// renderEmptyStore reports the nothing-saved-yet failure for interactive
// commands, which detect it before any orchestrator operation runs.
func renderEmptyStore() error {
	fmt.Println(tui.ErrorLine("No saved contexts. Use 'azctx add' to save your current context first."))
	return &renderedError{err: errs.ErrEmptyStore}
}

// renderContext prints the full details of a saved context.
func renderContext(c *contexts.Context) {
	fmt.Printf("  Context:      %s (%s)\n", c.ContextName, c.ContextID)
	fmt.Printf("  Subscription: %s (%s)\n", c.SubscriptionName, c.SubscriptionID)
	if c.TenantName != "" {
		fmt.Printf("  Tenant:       %s (%s)\n", c.TenantName, c.TenantID)
	} else {
		fmt.Printf("  Tenant:       %s\n", c.TenantID)
	}
	fmt.Printf("  User:         %s\n", c.Username)
	fmt.Printf("  Saved:        %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
}

// pickerItems converts saved records into picker entries.
func pickerItems(records []contexts.Context) []tui.Item {
	items := make([]tui.Item, 0, len(records))
	for _, r := range records {
		items = append(items, tui.Item{ID: r.ContextID, Name: r.ContextName})
	}
	return items
}
