package commands

import (
	"github.com/spf13/cobra"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
)

// Uninstall returns the command for removing the Spark Operator.
//
// The namespace is deleted together with the release.
func Uninstall(g *handlers.GlobalOptions) *cobra.Command {
	var namespace string
	var yes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall the Spark Operator and delete its namespace",
		Long: `Uninstall removes the Spark Operator release from a namespace and then
deletes the namespace itself, including everything the chart left behind.

The namespace must hold exactly one Spark Operator release.

Example:
  sparkop uninstall -n team-a --yes

WARNING: This operation is irreversible. Every resource in the namespace is deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Uninstall(cmd.Context(), g, namespace, yes)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace to uninstall from (required)")
	_ = cmd.MarkFlagRequired("namespace")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
