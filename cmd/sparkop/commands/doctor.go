package commands

import (
	"github.com/spf13/cobra"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
)

// Doctor returns the command for checking the helm and kubectl installs.
func Doctor(g *handlers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that helm and kubectl are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), g)
		},
	}
}
