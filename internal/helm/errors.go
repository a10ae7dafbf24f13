package helm

import (
	"errors"
	"strings"
)

var (
	// ErrListFailed is returned when `helm list` exits non-zero.
	ErrListFailed = errors.New("failed to list releases")

	// ErrValuesFetchFailed is returned when `helm get values` fails for a
	// reason other than the release being absent.
	ErrValuesFetchFailed = errors.New("failed to get release values")

	// ErrReleaseNotFound marks an absent release. It is a normal result.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrUpgradeFailed is returned when `helm upgrade` exits non-zero.
	ErrUpgradeFailed = errors.New("failed to upgrade release")

	// ErrDeleteFailed is returned when `helm delete` fails for a reason
	// other than the release already being gone.
	ErrDeleteFailed = errors.New("failed to delete release")

	// ErrUnrecognizedStatus is returned for a status outside the known set.
	ErrUnrecognizedStatus = errors.New("unrecognized release status")
)

// notFoundMarker is the text helm prints when a release does not exist.
const notFoundMarker = "not found"

// isNotFound reports whether helm's output signals an absent release.
// This is the only place helm output text is interpreted.
func isNotFound(stdout, stderr string) bool {
	return strings.Contains(stderr, notFoundMarker) || strings.Contains(stdout, notFoundMarker)
}
