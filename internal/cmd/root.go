// Package cmd wires the azctx command line surface. Commands build an
// orchestrator from configuration, run one operation, and render its
// outcome; exit codes are assigned in main.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/azctx/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "azctx",
	Short: "Fast context switching for the Azure CLI",
	Long: `azctx saves Azure CLI accounts as named contexts and switches between
them without hunting for subscription ids. A context is a short memorable
id plus the subscription, tenant and user it points at; switching sets
the Azure CLI's active account and verifies the change took effect.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/azctx/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/azctx")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AZCTX")
	// Replace dots with underscores for nested keys in env vars
	// e.g., AZCTX_AZURE_COMMAND_TIMEOUT_SECONDS for azure.command_timeout_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
