package handlers

import (
	"context"
	"fmt"

	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/cli/values"
	"helm.sh/helm/v3/pkg/getter"
)

// InstallOptions holds the install command's value sources.
type InstallOptions struct {
	Namespace    string
	ValueFiles   []string
	Values       []string
	StringValues []string
}

// mergeValues combines -f files and --set flags the way helm does.
var mergeValues = func(opts InstallOptions) (map[string]interface{}, error) {
	valueOpts := &values.Options{
		ValueFiles:   opts.ValueFiles,
		Values:       opts.Values,
		StringValues: opts.StringValues,
	}
	merged, err := valueOpts.MergeValues(getter.All(cli.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to merge values: %w", err)
	}
	return merged, nil
}

// Install handles the install command.
func Install(ctx context.Context, g *GlobalOptions, opts InstallOptions) error {
	vals, err := mergeValues(opts)
	if err != nil {
		return err
	}

	s, err := newSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.finish()

	rel, err := s.controller.Install(ctx, opts.Namespace, s.cfg.Release.Name, vals)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "Installed %s\n", rel.String())
	return err
}
