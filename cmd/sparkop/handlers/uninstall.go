package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrConfirmationRequired is returned when uninstall cannot prompt and
// --yes was not given.
var ErrConfirmationRequired = errors.New("refusing to uninstall without confirmation: pass --yes")

// confirmUninstall asks the operator to confirm deleting namespace.
var confirmUninstall = func(ctx context.Context, namespace string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Uninstall the Spark Operator from %q?", namespace)).
				Description("The release is removed and the namespace with everything in it is deleted").
				Affirmative("Uninstall").
				Negative("Cancel").
				Value(&confirmed),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// Uninstall handles the uninstall command.
func Uninstall(ctx context.Context, g *GlobalOptions, namespace string, yes bool) error {
	if !yes {
		if !isInteractive() {
			return ErrConfirmationRequired
		}
		ok, err := confirmUninstall(ctx, namespace)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			_, err := fmt.Fprintln(stdout, "Aborted")
			return err
		}
	}

	s, err := newSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.finish()

	rel, err := s.controller.Uninstall(ctx, namespace)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "Uninstalled %s and deleted namespace %s\n", rel.String(), rel.Namespace)
	return err
}
