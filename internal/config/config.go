package config

import (
	"time"

	"github.com/mlops-platform/sparkop/internal/cliopts"
)

// Config holds the application configuration.
type Config struct {
	Helm    ToolConfig `mapstructure:"helm" yaml:"helm"`
	Kubectl ToolConfig `mapstructure:"kubectl" yaml:"kubectl"`

	// Shell runs every helm and kubectl command line.
	Shell string `mapstructure:"shell" yaml:"shell"`

	// Kubeconfig and KubeContext are passed to both tools when set.
	Kubeconfig  string `mapstructure:"kubeconfig" yaml:"kubeconfig"`
	KubeContext string `mapstructure:"kube_context" yaml:"kube_context"`

	Chart   ChartConfig   `mapstructure:"chart" yaml:"chart"`
	Release ReleaseConfig `mapstructure:"release" yaml:"release"`

	// Timeout bounds helm's --wait on install and uninstall.
	Timeout time.Duration `mapstructure:"timeout" yaml:"-"`

	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// ToolConfig locates an external binary.
type ToolConfig struct {
	Binary string `mapstructure:"binary" yaml:"binary"`
}

// ChartConfig selects the Spark Operator chart.
type ChartConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"` // empty installs the latest
}

// ReleaseConfig names the release install creates.
type ReleaseConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// MetricsConfig controls where runner metrics are sent.
type MetricsConfig struct {
	// Pushgateway is the URL runner metrics are pushed to after each command.
	Pushgateway string `mapstructure:"pushgateway" yaml:"pushgateway"`
}

// HelmOptions returns the options added to every helm command.
func (c *Config) HelmOptions() cliopts.Options {
	var pairs []cliopts.Option
	if c.Kubeconfig != "" {
		pairs = append(pairs, cliopts.Opt("kubeconfig", c.Kubeconfig))
	}
	if c.KubeContext != "" {
		pairs = append(pairs, cliopts.Opt("kube_context", c.KubeContext))
	}
	return cliopts.New(pairs...)
}

// KubectlOptions returns the options added to every kubectl command.
func (c *Config) KubectlOptions() cliopts.Options {
	var pairs []cliopts.Option
	if c.Kubeconfig != "" {
		pairs = append(pairs, cliopts.Opt("kubeconfig", c.Kubeconfig))
	}
	if c.KubeContext != "" {
		pairs = append(pairs, cliopts.Opt("context", c.KubeContext))
	}
	return cliopts.New(pairs...)
}
