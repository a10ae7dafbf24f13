// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-platform/sparkop/cmd/sparkop/handlers"
	"github.com/mlops-platform/sparkop/internal/config"
)

// Root returns the root command for the sparkop CLI.
//
// Persistent flags that override configuration keys are bound to one viper
// instance shared by every subcommand.
func Root() *cobra.Command {
	return newRoot(&handlers.GlobalOptions{Viper: viper.New()})
}

func newRoot(g *handlers.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sparkop",
		Short:         "Manage Spark Operator installations on Kubernetes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.CountVarP(&g.Verbose, "verbose", "v", "Give more output; repeat up to 3 times")
	flags.BoolVarP(&g.Quiet, "quiet", "q", false, "Disable logging")
	flags.StringVar(&g.ConfigPath, "config", "", "Path to configuration file")
	flags.String("kubeconfig", "", "Path to the kubeconfig passed to helm and kubectl")
	flags.String("kube-context", "", "Kubeconfig context passed to helm and kubectl")
	_ = g.Viper.BindPFlag(config.KeyKubeconfig, flags.Lookup("kubeconfig"))
	_ = g.Viper.BindPFlag(config.KeyKubeContext, flags.Lookup("kube-context"))

	cmd.AddCommand(List(g))
	cmd.AddCommand(Install(g))
	cmd.AddCommand(Uninstall(g))
	cmd.AddCommand(GetKubectlConfig(g))
	cmd.AddCommand(Config(g))
	cmd.AddCommand(Doctor(g))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
