package handlers

import (
	"context"
	"fmt"
	"os"
)

// writeFile writes exported kubeconfigs; they hold a bearer token.
var writeFile = func(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}

// GetKubectlConfig handles the get-kubectl-config command. The document
// goes to stdout unless outputPath is set.
func GetKubectlConfig(ctx context.Context, g *GlobalOptions, namespace, outputPath string) error {
	s, err := newSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.finish()

	doc, err := s.controller.KubectlConfig(ctx, namespace)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err := fmt.Fprint(stdout, doc)
		return err
	}

	if err := writeFile(outputPath, []byte(doc)); err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}
	s.log.Info("Wrote kubeconfig", "path", outputPath)
	return nil
}
