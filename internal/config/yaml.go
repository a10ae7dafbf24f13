package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlView renders durations as text instead of nanoseconds.
type yamlView struct {
	Config  `yaml:",inline"`
	Timeout string `yaml:"timeout"`
}

// YAML renders the effective configuration in the config file format.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(yamlView{Config: *c, Timeout: c.Timeout.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
