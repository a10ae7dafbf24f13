package helm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/go-logr/logr"
	"helm.sh/helm/v3/pkg/chartutil"
	"sigs.k8s.io/yaml"

	"github.com/mlops-platform/sparkop/internal/cliopts"
	"github.com/mlops-platform/sparkop/internal/runner"
)

const (
	// DefaultBinary is the helm executable name.
	DefaultBinary = "helm"

	// AllNamespaces selects releases across every namespace.
	AllNamespaces = "all"

	// DefaultTimeout bounds helm's own --wait.
	DefaultTimeout = 10 * time.Minute
)

// Client runs helm commands through a Runner.
type Client struct {
	runner runner.Runner
	binary string
	global cliopts.Options
	logger logr.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the helm executable.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithGlobalOptions sets options appended to every helm command,
// such as --kubeconfig or --kube-context.
func WithGlobalOptions(opts cliopts.Options) Option {
	return func(c *Client) {
		c.global = opts
	}
}

// WithLogger sets the client logger.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a helm client.
func NewClient(r runner.Runner, opts ...Option) *Client {
	c := &Client{
		runner: r,
		binary: DefaultBinary,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpgradeOptions configures an install-or-upgrade.
type UpgradeOptions struct {
	ReleaseName string
	Chart       string
	Namespace   string
	Version     string
	Values      map[string]interface{}
	Install     bool
	Wait        bool
	Timeout     time.Duration
	Labels      []string
}

// IsAllNamespaces reports whether namespace selects every namespace.
func IsAllNamespaces(namespace string) bool {
	return namespace == "" || strings.EqualFold(namespace, AllNamespaces)
}

// ListReleases lists releases in namespace, or in all namespaces when
// namespace is empty or "all". Labels are ANDed into one selector.
// An empty helm response yields nil releases and no error.
func (c *Client) ListReleases(ctx context.Context, namespace string, labels ...string) ([]Release, error) {
	var opts cliopts.Options
	if IsAllNamespaces(namespace) {
		opts = c.global.Add(cliopts.Opt("all_namespaces", true), cliopts.Opt("output", "json"))
	} else {
		opts = c.global.Add(cliopts.Opt("namespace", namespace), cliopts.Opt("output", "json"))
	}
	if len(labels) > 0 {
		opts = opts.Add(cliopts.Opt("selector", strings.Join(labels, ",")))
	}

	line := fmt.Sprintf("%s list %s", quote(c.binary), opts)
	c.logger.Info("Listing helm releases", "namespace", namespace, "selector", strings.Join(labels, ","))

	res, err := c.runner.Run(ctx, runner.Command{Line: line, CaptureStdout: true, CaptureStderr: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}
	if !res.Success() {
		c.logger.Error(nil, "Failed to list releases", "stderr", strings.TrimSpace(res.Stderr))
		return nil, fmt.Errorf("%w: %s", ErrListFailed, strings.TrimSpace(res.Stderr))
	}

	if strings.TrimSpace(res.Stdout) == "" {
		c.logger.V(1).Info("Received empty response")
		return nil, nil
	}

	releases, err := parseReleases(res.Stdout)
	if err != nil {
		return nil, err
	}
	return releases, nil
}

// GetReleaseValues returns the fully computed values of a release.
// It returns ErrReleaseNotFound when the release does not exist.
func (c *Client) GetReleaseValues(ctx context.Context, releaseName, namespace string) (chartutil.Values, error) {
	opts := c.global.Add(
		cliopts.Opt("namespace", namespace),
		cliopts.Opt("output", "json"),
		cliopts.Opt("all", true),
	)
	line := fmt.Sprintf("%s get values %s %s", quote(c.binary), quote(releaseName), opts)
	c.logger.Info("Fetching release values", "release", releaseName, "namespace", namespace)

	res, err := c.runner.Run(ctx, runner.Command{Line: line, CaptureStdout: true, CaptureStderr: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValuesFetchFailed, err)
	}
	if !res.Success() {
		if isNotFound(res.Stdout, res.Stderr) {
			c.logger.Info("Release not found", "release", releaseName)
			return nil, fmt.Errorf("%w: %s", ErrReleaseNotFound, releaseName)
		}
		c.logger.Error(nil, "Failed to get values", "release", releaseName, "stderr", strings.TrimSpace(res.Stderr))
		return nil, fmt.Errorf("%w for %s: %s", ErrValuesFetchFailed, releaseName, strings.TrimSpace(res.Stderr))
	}

	values := chartutil.Values{}
	if strings.TrimSpace(res.Stdout) == "" || strings.TrimSpace(res.Stdout) == "null" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(res.Stdout), &values); err != nil {
		return nil, fmt.Errorf("failed to decode values of %s: %w", releaseName, err)
	}
	return values, nil
}

// Upgrade installs or upgrades a release. Values are serialized as YAML
// and piped to helm's standard input.
func (c *Client) Upgrade(ctx context.Context, o UpgradeOptions) error {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	values := o.Values
	if values == nil {
		values = map[string]interface{}{}
	}
	doc, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode values for %s: %w", o.ReleaseName, err)
	}

	opts := c.global
	if o.Version != "" {
		opts = opts.Add(cliopts.Opt("version", o.Version))
	}
	opts = opts.Add(
		cliopts.Opt("values", "-"),
		cliopts.Opt("install", o.Install),
		cliopts.Opt("wait", o.Wait),
		cliopts.Opt("timeout", timeoutSeconds(timeout)),
		cliopts.Opt("namespace", o.Namespace),
		cliopts.Opt("create_namespace", true),
	)
	if len(o.Labels) > 0 {
		opts = opts.Add(cliopts.Opt("labels", strings.Join(o.Labels, ",")))
	}

	line := fmt.Sprintf("%s upgrade %s %s %s", quote(c.binary), quote(o.ReleaseName), quote(o.Chart), opts)
	c.logger.Info("Upgrading helm release", "release", o.ReleaseName, "chart", o.Chart, "namespace", o.Namespace)

	res, err := c.runner.Run(ctx, runner.Command{Line: line, Input: string(doc), CaptureStderr: true})
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrUpgradeFailed, o.ReleaseName, err)
	}
	if !res.Success() {
		c.logger.Error(nil, "Failed to upgrade helm release", "release", o.ReleaseName, "stderr", strings.TrimSpace(res.Stderr))
		return fmt.Errorf("%w %s: %s", ErrUpgradeFailed, o.ReleaseName, strings.TrimSpace(res.Stderr))
	}

	c.logger.Info("Upgraded helm release", "release", o.ReleaseName)
	return nil
}

// Delete removes a release. A release that is already gone is not an error.
func (c *Client) Delete(ctx context.Context, releaseName, namespace string, wait bool, timeout time.Duration) error {
	opts := c.global.Add(
		cliopts.Opt("wait", wait),
		cliopts.Opt("namespace", namespace),
	)
	if timeout > 0 {
		opts = opts.Add(cliopts.Opt("timeout", timeoutSeconds(timeout)))
	}

	line := fmt.Sprintf("%s delete %s %s", quote(c.binary), quote(releaseName), opts)
	c.logger.Info("Deleting helm release", "release", releaseName, "namespace", namespace)

	res, err := c.runner.Run(ctx, runner.Command{Line: line, CaptureStderr: true})
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrDeleteFailed, releaseName, err)
	}
	if !res.Success() {
		if isNotFound(res.Stdout, res.Stderr) {
			c.logger.Info("Helm release has already been deleted", "release", releaseName)
			return nil
		}
		c.logger.Error(nil, "Failed to delete helm release", "release", releaseName, "stderr", strings.TrimSpace(res.Stderr))
		return fmt.Errorf("%w %s: %s", ErrDeleteFailed, releaseName, strings.TrimSpace(res.Stderr))
	}

	c.logger.Info("Deleted helm release", "release", releaseName)
	return nil
}

func quote(s string) string {
	return shellescape.Quote(s)
}

func timeoutSeconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int64(d.Round(time.Second)/time.Second))
}
