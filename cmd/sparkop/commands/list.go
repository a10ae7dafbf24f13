package commands

import (
	"github.com/spf13/cobra"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
)

// List returns the command for listing Spark Operator releases.
//
// Optional flags:
//
//	--namespace, -n: Namespace to list, or "all" (default: all)
//	--output, -o: table, json or yaml (default: table)
func List(g *handlers.GlobalOptions) *cobra.Command {
	var namespace string
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Spark Operator installations in the cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.List(cmd.Context(), g, namespace, output)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "all", "Namespace to list, or all namespaces")
	cmd.Flags().StringVarP(&output, "output", "o", handlers.OutputTable, "Output format: table, json or yaml")

	return cmd
}
