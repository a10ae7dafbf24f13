package config

import (
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyHelmBinary    = "helm.binary"
	KeyKubectlBinary = "kubectl.binary"
	KeyShell         = "shell"
	KeyKubeconfig    = "kubeconfig"
	KeyKubeContext   = "kube_context"
	KeyChartName     = "chart.name"
	KeyChartVersion  = "chart.version"
	KeyReleaseName   = "release.name"
	KeyTimeout       = "timeout"
	KeyPushgateway   = "metrics.pushgateway"
)

// EnvPrefix prefixes every environment variable sparkop reads.
const EnvPrefix = "SPARKOP"

// Default values.
const (
	DefaultHelmBinary    = "helm"
	DefaultKubectlBinary = "kubectl"
	DefaultShell         = "/bin/sh"
	DefaultChartName     = "charts/spark-operator"
	DefaultReleaseName   = "platform-spark"
	DefaultTimeout       = 10 * time.Minute
)

// SetDefaults registers every key with its default. Keys without a
// default are registered empty so environment variables reach them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHelmBinary, DefaultHelmBinary)
	v.SetDefault(KeyKubectlBinary, DefaultKubectlBinary)
	v.SetDefault(KeyShell, DefaultShell)
	v.SetDefault(KeyKubeconfig, "")
	v.SetDefault(KeyKubeContext, "")
	v.SetDefault(KeyChartName, DefaultChartName)
	v.SetDefault(KeyChartVersion, "")
	v.SetDefault(KeyReleaseName, DefaultReleaseName)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyPushgateway, "")
}
