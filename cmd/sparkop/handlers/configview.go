package handlers

import (
	"context"
	"fmt"
)

// ConfigView handles the config command. It prints the effective
// configuration after defaults, file, environment and flags.
func ConfigView(_ context.Context, g *GlobalOptions) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}
