package handlers

import (
	"context"
)

// List handles the list command.
func List(ctx context.Context, g *GlobalOptions, namespace, output string) error {
	s, err := newSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.finish()

	releases, err := s.controller.ListReleases(ctx, namespace)
	if err != nil {
		return err
	}

	return renderReleases(stdout, releases, output, isInteractive())
}
