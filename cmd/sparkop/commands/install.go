package commands

import (
	"github.com/spf13/cobra"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
	"github.com/mlops-platform/sparkop/internal/config"
)

// Install returns the command for installing the Spark Operator.
//
// Install refuses to run when the namespace already has a release. Values
// are merged from -f files and --set flags with helm's own rules.
func Install(g *handlers.GlobalOptions) *cobra.Command {
	var opts handlers.InstallOptions

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the Spark Operator into a namespace",
		Long: `Install the Spark Operator chart into a namespace.

The namespace is created when missing. Installation is refused when the
namespace already holds a Spark Operator release; uninstall it first.

Set rbac.extraPermissions.enabled=true and
rbac.extraPermissions.serviceAccountName to allow exporting a kubeconfig
with get-kubectl-config afterwards.

Examples:
  # Install with chart defaults
  sparkop install -n team-a

  # Install a pinned chart version with extra permissions
  sparkop install -n team-a --version 2.1.0 \
    --set rbac.extraPermissions.enabled=true \
    --set rbac.extraPermissions.serviceAccountName=spark-admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), g, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace to install into (required)")
	_ = cmd.MarkFlagRequired("namespace")
	flags.StringArrayVarP(&opts.ValueFiles, "values", "f", nil, "Values file, may be repeated")
	flags.StringArrayVar(&opts.Values, "set", nil, "Set a value (key=value), may be repeated")
	flags.StringArrayVar(&opts.StringValues, "set-string", nil, "Set a string value (key=value), may be repeated")

	flags.String("release", config.DefaultReleaseName, "Release name")
	flags.String("version", "", "Chart version (default: latest)")
	flags.Duration("timeout", config.DefaultTimeout, "How long helm waits for the operator to become ready")
	_ = g.Viper.BindPFlag(config.KeyReleaseName, flags.Lookup("release"))
	_ = g.Viper.BindPFlag(config.KeyChartVersion, flags.Lookup("version"))
	_ = g.Viper.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))

	return cmd
}
