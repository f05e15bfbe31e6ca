package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/azctx/internal/tui"
)

var listVerbose bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved contexts",
	Long: `List the saved contexts. By default only id and name are shown; with
--verbose each context's subscription, tenant, user and save time are
included.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "show full context details")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	orch, logger := buildOrchestrator()
	defer logger.Close()

	out := orch.List(listVerbose)
	if !out.OK {
		return renderOutcome(out)
	}
	if out.Message != "" {
		fmt.Println(tui.WarningLine(out.Message))
	}

	// An empty store is a successful, empty listing
	if len(out.Contexts) == 0 && len(out.Summaries) == 0 {
		fmt.Println(tui.Muted.Render("No saved contexts."))
		return nil
	}

	if listVerbose {
		for i := range out.Contexts {
			if i > 0 {
				fmt.Println()
			}
			renderContext(&out.Contexts[i])
		}
		return nil
	}

	for _, s := range out.Summaries {
		fmt.Printf("  %-20s  %s\n", s.ContextID, s.ContextName)
	}
	return nil
}
