package operator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"helm.sh/helm/v3/pkg/chartutil"

	"github.com/mlops-platform/sparkop/internal/helm"
	"github.com/mlops-platform/sparkop/internal/util/labels"
	"github.com/mlops-platform/sparkop/internal/util/naming"
)

const (
	// ChartName is the Spark Operator chart reference.
	ChartName = "charts/spark-operator"

	// DefaultReleaseName is used when install is given no release name.
	DefaultReleaseName = "platform-spark"

	// extraPermissionsKey is the values table holding the elevated
	// service account settings.
	extraPermissionsKey = "rbac.extraPermissions"
)

// ChartClient is the subset of the helm client the controller uses.
type ChartClient interface {
	ListReleases(ctx context.Context, namespace string, labels ...string) ([]helm.Release, error)
	GetReleaseValues(ctx context.Context, releaseName, namespace string) (chartutil.Values, error)
	Upgrade(ctx context.Context, opts helm.UpgradeOptions) error
	Delete(ctx context.Context, releaseName, namespace string, wait bool, timeout time.Duration) error
}

// ClusterClient is the subset of the kubectl client the controller uses.
type ClusterClient interface {
	RenderAccessConfig(ctx context.Context, serviceAccountName, namespace string) (string, error)
	Delete(ctx context.Context, resourceType, resourceName, namespace string) error
}

// Controller runs the install, uninstall, list and kubeconfig workflows.
type Controller struct {
	chart        ChartClient
	cluster      ClusterClient
	chartName    string
	chartVersion string
	timeout      time.Duration
	logger       logr.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithChart overrides the chart reference and pins its version.
// An empty version installs the latest available.
func WithChart(name, version string) Option {
	return func(c *Controller) {
		if name != "" {
			c.chartName = name
		}
		c.chartVersion = version
	}
}

// WithTimeout bounds helm's wait during install and uninstall.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger logr.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller over the given clients.
func NewController(chart ChartClient, cluster ClusterClient, opts ...Option) *Controller {
	c := &Controller{
		chart:     chart,
		cluster:   cluster,
		chartName: ChartName,
		timeout:   helm.DefaultTimeout,
		logger:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListReleases returns the releases sparkop manages in namespace.
// An empty namespace or "all" lists every namespace.
func (c *Controller) ListReleases(ctx context.Context, namespace string) ([]helm.Release, error) {
	return c.chart.ListReleases(ctx, namespace, labels.ManagedSelector())
}

// Install installs the Spark Operator into namespace and returns the
// resulting release. It refuses when the namespace already has a release.
func (c *Controller) Install(ctx context.Context, namespace, releaseName string, values map[string]interface{}) (helm.Release, error) {
	if helm.IsAllNamespaces(namespace) {
		return helm.Release{}, fmt.Errorf("%w: install needs a single namespace", ErrInvalidNamespace)
	}
	if err := naming.ValidateNamespace(namespace); err != nil {
		return helm.Release{}, fmt.Errorf("%w: %w", ErrInvalidNamespace, err)
	}
	if releaseName == "" {
		releaseName = DefaultReleaseName
	}
	if err := naming.ValidateReleaseName(releaseName); err != nil {
		return helm.Release{}, err
	}

	existing, err := c.ListReleases(ctx, namespace)
	if err != nil {
		return helm.Release{}, err
	}
	if len(existing) > 0 {
		return helm.Release{}, &AlreadyInstalledError{Namespace: namespace, Releases: releaseNames(existing)}
	}

	c.logger.Info("Installing spark operator", "namespace", namespace, "release", releaseName, "chart", c.chartName)
	err = c.chart.Upgrade(ctx, helm.UpgradeOptions{
		ReleaseName: releaseName,
		Chart:       c.chartName,
		Namespace:   namespace,
		Version:     c.chartVersion,
		Values:      values,
		Install:     true,
		Wait:        true,
		Timeout:     c.timeout,
		Labels:      labels.NewLabelBuilder(namespace).WithRelease(releaseName).Pairs(),
	})
	if err != nil {
		return helm.Release{}, err
	}

	installed, err := c.ListReleases(ctx, namespace)
	if err != nil {
		return helm.Release{}, err
	}
	switch len(installed) {
	case 0:
		return helm.Release{}, fmt.Errorf("%w in namespace %s after install", ErrNotFound, namespace)
	case 1:
		c.logger.Info("Installed spark operator", "release", installed[0].String())
		return installed[0], nil
	default:
		return helm.Release{}, fmt.Errorf("%w: install left %d releases in namespace %s: %s",
			ErrConsistencyViolation, len(installed), namespace, strings.Join(releaseNames(installed), ", "))
	}
}

// Uninstall removes the single release in namespace and then deletes the
// namespace itself. It returns the removed release.
func (c *Controller) Uninstall(ctx context.Context, namespace string) (helm.Release, error) {
	rel, err := c.findOne(ctx, namespace)
	if err != nil {
		return helm.Release{}, err
	}

	c.logger.Info("Uninstalling spark operator", "release", rel.String())
	if err := c.chart.Delete(ctx, rel.Name, rel.Namespace, true, c.timeout); err != nil {
		return helm.Release{}, err
	}
	if err := c.cluster.Delete(ctx, "namespace", rel.Namespace, ""); err != nil {
		return helm.Release{}, err
	}

	c.logger.Info("Uninstalled spark operator", "namespace", rel.Namespace)
	return rel, nil
}

// KubectlConfig renders a kubeconfig for the release's elevated service
// account. The release values must enable rbac.extraPermissions and name
// the service account.
func (c *Controller) KubectlConfig(ctx context.Context, namespace string) (string, error) {
	rel, err := c.findOne(ctx, namespace)
	if err != nil {
		return "", err
	}

	values, err := c.chart.GetReleaseValues(ctx, rel.Name, rel.Namespace)
	if err != nil {
		if errors.Is(err, helm.ErrReleaseNotFound) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", err
	}

	serviceAccount, err := extraPermissionsAccount(values)
	if err != nil {
		return "", fmt.Errorf("release %s: %w", rel.String(), err)
	}

	return c.cluster.RenderAccessConfig(ctx, serviceAccount, rel.Namespace)
}

// extraPermissionsAccount returns the elevated service account name when
// the feature is enabled.
func extraPermissionsAccount(values chartutil.Values) (string, error) {
	extra, err := values.Table(extraPermissionsKey)
	if err != nil {
		return "", fmt.Errorf("%w: %s missing from values", ErrFeatureNotEnabled, extraPermissionsKey)
	}
	if enabled, _ := extra["enabled"].(bool); !enabled {
		return "", ErrFeatureNotEnabled
	}
	name, _ := extra["serviceAccountName"].(string)
	if name == "" {
		return "", fmt.Errorf("%w: %s.serviceAccountName is empty", ErrFeatureNotEnabled, extraPermissionsKey)
	}
	return name, nil
}

// findOne returns the only managed release in namespace.
func (c *Controller) findOne(ctx context.Context, namespace string) (helm.Release, error) {
	releases, err := c.ListReleases(ctx, namespace)
	if err != nil {
		return helm.Release{}, err
	}
	switch len(releases) {
	case 0:
		return helm.Release{}, fmt.Errorf("%w in namespace %s", ErrNotFound, scopeName(namespace))
	case 1:
		return releases[0], nil
	default:
		return helm.Release{}, fmt.Errorf("%w in namespace %s: %s",
			ErrAmbiguousTarget, scopeName(namespace), strings.Join(releaseNames(releases), ", "))
	}
}

func releaseNames(releases []helm.Release) []string {
	names := make([]string, len(releases))
	for i, r := range releases {
		names[i] = r.Namespace + "/" + r.Name
	}
	return names
}

func scopeName(namespace string) string {
	if helm.IsAllNamespaces(namespace) {
		return helm.AllNamespaces
	}
	return namespace
}
