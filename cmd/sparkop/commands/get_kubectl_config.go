package commands

import (
	"github.com/spf13/cobra"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
)

// GetKubectlConfig returns the command that exports a kubeconfig for the
// operator's elevated service account.
func GetKubectlConfig(g *handlers.GlobalOptions) *cobra.Command {
	var namespace string
	var output string

	cmd := &cobra.Command{
		Use:   "get-kubectl-config",
		Short: "Generate a kubeconfig for a Spark Operator installation",
		Long: `Generate a kubeconfig that authenticates as the service account the
Spark Operator release grants extra permissions to.

The release must have been installed with rbac.extraPermissions.enabled=true
and rbac.extraPermissions.serviceAccountName set.

Examples:
  # Print to stdout
  sparkop get-kubectl-config -n team-a

  # Write to a file readable only by you
  sparkop get-kubectl-config -n team-a -o team-a.kubeconfig`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.GetKubectlConfig(cmd.Context(), g, namespace, output)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "all", "Namespace of the release, or all namespaces")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the kubeconfig to (default: stdout)")

	return cmd
}
