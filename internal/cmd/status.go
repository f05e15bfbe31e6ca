package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/azctx/internal/orchestrator"
	"github.com/Iron-Ham/azctx/internal/tui"
)

var statusVerbose bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active account and its context, if any",
	Long: `Show the Azure CLI's currently active account and, when it matches a
saved context, that context's id and name. With --verbose the full
subscription, tenant and user details are included.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "show full account details")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	orch, logger := buildOrchestrator()
	defer logger.Close()

	out := orch.Status(cmd.Context())
	if !out.OK {
		return renderOutcome(out)
	}

	switch out.Kind {
	case orchestrator.KindManaged:
		fmt.Println(tui.SuccessLine(out.Message))
		if statusVerbose {
			renderContext(out.Context)
		}
	case orchestrator.KindUnmanaged:
		fmt.Println(tui.WarningLine(out.Message))
		if statusVerbose && out.Account != nil {
			fmt.Printf("  Subscription: %s (%s)\n", out.Account.Name, out.Account.ID)
			fmt.Printf("  Tenant:       %s\n", out.Account.TenantID)
			fmt.Printf("  User:         %s\n", out.Account.User.Name)
		}
	}
	return nil
}
