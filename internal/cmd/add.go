package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/azctx/internal/contexts"
	"github.com/Iron-Ham/azctx/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [id] [name...]",
	Short: "Save the current Azure account as a named context",
	Long: `Save the Azure CLI's currently active account as a context. The id is a
short handle (1-20 characters: letters, digits, '-' or '_') used with
'azctx switch'; the name is a free-form description up to 100 characters.

Missing arguments are prompted for interactively.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var id, name string
	if len(args) > 0 {
		id = args[0]
	}
	if len(args) > 1 {
		name = strings.Join(args[1:], " ")
	}

	if id == "" || name == "" {
		values, err := promptMissing(id, name)
		if err != nil {
			return err
		}
		id, name = values[0], values[1]
	}

	orch, logger := buildOrchestrator()
	defer logger.Close()

	out := orch.AddCurrent(cmd.Context(), id, name)
	return renderOutcome(out)
}

// promptMissing asks for whichever of id and name were not given on the
// command line. A prompted id that already exists re-prompts rather than
// failing after the fact; pre-supplied values are validated by the
// orchestrator, not re-prompted.
func promptMissing(id, name string) ([]string, error) {
	var fields []tui.Field
	if id == "" {
		fields = append(fields, tui.Field{
			Label:       "Context id",
			Placeholder: "e.g. dev",
			CharLimit:   contexts.ContextIDMaxLen,
			Validate:    idPromptValidator(buildStore()),
		})
	}
	if name == "" {
		fields = append(fields, tui.Field{
			Label:       "Context name",
			Placeholder: "e.g. Development subscription",
			CharLimit:   contexts.ContextNameMaxLen,
			Validate:    contexts.ValidateContextName,
		})
	}

	values, err := tui.Prompt("Save current context", fields)
	if err != nil {
		return nil, err
	}

	// Re-merge prompted values with those given as arguments.
	result := []string{id, name}
	idx := 0
	if id == "" {
		result[0] = values[idx]
		idx++
	}
	if name == "" {
		result[1] = values[idx]
	}
	return result, nil
}

// idPromptValidator checks both the id format and that the id is not
// already taken, so the prompt re-asks instead of failing after the save.
// An unreadable store is reported by the save itself, not the prompt.
func idPromptValidator(store *contexts.Store) func(string) error {
	return func(value string) error {
		if err := contexts.ValidateContextID(value); err != nil {
			return err
		}
		if existing, err := store.FindByID(value); err == nil && existing != nil {
			return fmt.Errorf("context id %q already exists", value)
		}
		return nil
	}
}
