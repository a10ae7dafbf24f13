package operator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyInstalled is returned when install finds existing releases.
	ErrAlreadyInstalled = errors.New("spark operator already installed")

	// ErrNotFound is returned when no release exists where one is required.
	ErrNotFound = errors.New("no spark operator release found")

	// ErrAmbiguousTarget is returned when several releases match where
	// exactly one is required.
	ErrAmbiguousTarget = errors.New("more than one spark operator release found")

	// ErrConsistencyViolation is returned when install leaves more than one
	// release behind.
	ErrConsistencyViolation = errors.New("release consistency violation")

	// ErrFeatureNotEnabled is returned when the release has no elevated
	// service account to mint a kubeconfig for.
	ErrFeatureNotEnabled = errors.New("rbac.extraPermissions is not enabled")

	// ErrInvalidNamespace is returned when an operation needs one concrete
	// namespace.
	ErrInvalidNamespace = errors.New("invalid namespace")
)

// AlreadyInstalledError names the releases that blocked an install.
type AlreadyInstalledError struct {
	Namespace string
	Releases  []string
}

func (e *AlreadyInstalledError) Error() string {
	return fmt.Sprintf("%s in namespace %s: %s", ErrAlreadyInstalled, e.Namespace, strings.Join(e.Releases, ", "))
}

// Is makes errors.Is(err, ErrAlreadyInstalled) match.
func (e *AlreadyInstalledError) Is(target error) bool {
	return target == ErrAlreadyInstalled
}
