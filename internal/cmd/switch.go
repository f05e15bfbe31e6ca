package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/azctx/internal/tui"
)

var switchID string

var switchCmd = &cobra.Command{
	Use:     "switch [id]",
	Aliases: []string{"sw"},
	Short:   "Switch the active Azure account to a saved context",
	Long: `Switch the Azure CLI's active account to the subscription a saved
context points at. With an id (positional or --id) the switch is direct;
without one an interactive picker lists the saved contexts. The switch is
verified by re-querying the active account afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSwitch,
}

func init() {
	switchCmd.Flags().StringVarP(&switchID, "id", "i", "", "context id to switch to")
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	orch, logger := buildOrchestrator()
	defer logger.Close()

	id := switchID
	if id == "" && len(args) == 1 {
		id = args[0]
	}
	if id != "" {
		return renderOutcome(orch.SwitchByID(cmd.Context(), id))
	}

	// Interactive: load the full records so the chosen one can be switched
	// to without a second store read.
	listed := orch.List(true)
	if !listed.OK {
		return renderOutcome(listed)
	}
	if listed.Message != "" {
		fmt.Println(tui.WarningLine(listed.Message))
	}

	records := listed.Contexts
	if len(records) == 0 {
		return renderEmptyStore()
	}
	if len(records) == 1 {
		only := records[0]
		fmt.Println(tui.WarningLine(fmt.Sprintf(
			"Only one context is saved; switching to %q (%s).", only.ContextName, only.ContextID)))
		return renderOutcome(orch.SwitchTo(cmd.Context(), only))
	}

	choice, err := tui.SelectContext("Switch context", pickerItems(records))
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ContextID == choice.ID {
			return renderOutcome(orch.SwitchTo(cmd.Context(), r))
		}
	}
	// The picker only offers ids from the listed records.
	return fmt.Errorf("selected context %q no longer exists", choice.ID)
}
