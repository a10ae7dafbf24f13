package config

import (
	"fmt"
	"net/url"

	"github.com/mlops-platform/sparkop/internal/util/naming"
)

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if c.Helm.Binary == "" {
		return fmt.Errorf("%s is required", KeyHelmBinary)
	}
	if c.Kubectl.Binary == "" {
		return fmt.Errorf("%s is required", KeyKubectlBinary)
	}
	if c.Shell == "" {
		return fmt.Errorf("%s is required", KeyShell)
	}
	if c.Chart.Name == "" {
		return fmt.Errorf("%s is required", KeyChartName)
	}
	if err := naming.ValidateReleaseName(c.Release.Name); err != nil {
		return fmt.Errorf("%s: %w", KeyReleaseName, err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}

	if c.Metrics.Pushgateway != "" {
		u, err := url.Parse(c.Metrics.Pushgateway)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyPushgateway, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", KeyPushgateway, c.Metrics.Pushgateway)
		}
	}

	return nil
}
