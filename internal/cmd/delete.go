package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/azctx/internal/tui"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a saved context",
	Long: `Delete a saved context. Without an id an interactive picker lists the
saved contexts. Deleting a context never changes the Azure CLI's active
account; it only forgets the saved handle.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	orch, logger := buildOrchestrator()
	defer logger.Close()

	var id, label string
	if len(args) == 1 {
		id = args[0]
		label = id
	} else {
		listed := orch.List(false)
		if !listed.OK {
			return renderOutcome(listed)
		}
		if len(listed.Summaries) == 0 {
			return renderEmptyStore()
		}
		items := make([]tui.Item, 0, len(listed.Summaries))
		for _, s := range listed.Summaries {
			items = append(items, tui.Item{ID: s.ContextID, Name: s.ContextName})
		}

		choice, err := tui.SelectContext("Delete context", items)
		if err != nil {
			return err
		}
		id = choice.ID
		label = choice.Label()
	}

	confirmed, err := tui.Confirm(fmt.Sprintf("Delete context %s?", label))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println(tui.WarningLine("Aborted; nothing deleted."))
		return nil
	}

	return renderOutcome(orch.Delete(id))
}
