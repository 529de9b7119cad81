package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cascade/internal/buildinfo"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:     "cascade",
		Short:   "Cash-flow waterfall cascade charts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "cascade.yaml", "config file (optional)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRenderCommand(&g))
	rootCmd.AddCommand(newTableCommand(&g))
	rootCmd.AddCommand(newExportCommand(&g))
	rootCmd.AddCommand(newDomainCommand(&g))

	return rootCmd
}
