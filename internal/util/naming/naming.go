package naming

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

// MaxReleaseNameLength is the longest release name helm accepts.
const MaxReleaseNameLength = 53

// ErrInvalidName is returned for names the cluster or helm would reject.
var ErrInvalidName = errors.New("invalid name")

// ValidateNamespace checks that namespace is a DNS-1123 label.
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("%w: namespace is required", ErrInvalidName)
	}
	if errs := validation.IsDNS1123Label(namespace); len(errs) > 0 {
		return fmt.Errorf("%w: namespace %q: %s", ErrInvalidName, namespace, strings.Join(errs, "; "))
	}
	return nil
}

// ValidateReleaseName checks that name is a DNS-1123 label no longer than
// MaxReleaseNameLength.
func ValidateReleaseName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: release name is required", ErrInvalidName)
	}
	if len(name) > MaxReleaseNameLength {
		return fmt.Errorf("%w: release name %q exceeds %d characters", ErrInvalidName, name, MaxReleaseNameLength)
	}
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("%w: release name %q: %s", ErrInvalidName, name, strings.Join(errs, "; "))
	}
	return nil
}
