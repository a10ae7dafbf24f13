package commands

import (
	"github.com/spf13/cobra"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
)

// Config returns the command that prints the effective configuration.
func Config(g *handlers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration sparkop would run with, after applying
defaults, the --config file, SPARKOP_* environment variables and flags.

The output is valid input for --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ConfigView(cmd.Context(), g)
		},
	}
}
