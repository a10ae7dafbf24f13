package labels

import (
	"sort"

	k8slabels "k8s.io/apimachinery/pkg/labels"
)

// Standard label keys for managed releases.
const (
	// KeyManagedBy identifies the management system
	KeyManagedBy = "sparkop.io/managed-by"

	// KeyNamespace records the namespace the release was installed into
	KeyNamespace = "sparkop.io/namespace"

	// KeyRelease records the release name
	KeyRelease = "sparkop.io/release"
)

// ManagedBySparkop is the KeyManagedBy value for releases created by sparkop.
const ManagedBySparkop = "sparkop"

// LabelBuilder provides a fluent interface for building release labels.
type LabelBuilder struct {
	labels k8slabels.Set
}

// NewLabelBuilder creates a builder with the managed-by and namespace
// labels pre-set.
func NewLabelBuilder(namespace string) *LabelBuilder {
	return &LabelBuilder{
		labels: k8slabels.Set{
			KeyManagedBy: ManagedBySparkop,
			KeyNamespace: namespace,
		},
	}
}

// WithRelease adds the release name label.
func (lb *LabelBuilder) WithRelease(release string) *LabelBuilder {
	lb.labels[KeyRelease] = release
	return lb
}

// Pairs returns the labels as sorted key=value strings.
func (lb *LabelBuilder) Pairs() []string {
	pairs := make([]string, 0, len(lb.labels))
	for k, v := range lb.labels {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// ManagedSelector returns the selector matching every release sparkop manages.
func ManagedSelector() string {
	return k8slabels.Set{KeyManagedBy: ManagedBySparkop}.String()
}
