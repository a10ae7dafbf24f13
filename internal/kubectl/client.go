package kubectl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/mlops-platform/sparkop/internal/cliopts"
	"github.com/mlops-platform/sparkop/internal/runner"
)

// DefaultBinary is the kubectl executable name.
const DefaultBinary = "kubectl"

// secretNameJSONPath selects the first secret bound to a service account.
const secretNameJSONPath = "jsonpath={.secrets[0].name}"

// Client runs kubectl commands through a Runner.
type Client struct {
	runner runner.Runner
	binary string
	global cliopts.Options
	logger logr.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the kubectl executable.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithGlobalOptions sets options appended to every kubectl command.
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

// NewClient creates a kubectl client.
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

// CurrentClusterInfo reads the cluster of the active context from
// `kubectl config view --minify`.
func (c *Client) CurrentClusterInfo(ctx context.Context) (ClusterInfo, error) {
	opts := c.global.Add(cliopts.Opt("output", "json"), cliopts.Opt("minify", true))
	line := fmt.Sprintf("%s config view %s", c.cmd(), opts)

	stdout, err := c.read(ctx, line)
	if err != nil {
		return ClusterInfo{}, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	cfg, err := clientcmd.Load([]byte(stdout))
	if err != nil {
		return ClusterInfo{}, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	name, cluster := selectCluster(cfg)
	if cluster == nil {
		return ClusterInfo{}, fmt.Errorf("%w: no cluster in active context", ErrConfigParse)
	}
	if cluster.Server == "" {
		return ClusterInfo{}, fmt.Errorf("%w: cluster %s has no server", ErrConfigParse, name)
	}

	return ClusterInfo{Name: name, ControlPlaneURL: cluster.Server}, nil
}

// selectCluster picks the cluster of the current context, falling back to
// the first cluster by name. A minified config holds exactly one.
func selectCluster(cfg *clientcmdapi.Config) (string, *clientcmdapi.Cluster) {
	if kctx, ok := cfg.Contexts[cfg.CurrentContext]; ok {
		if cluster, ok := cfg.Clusters[kctx.Cluster]; ok {
			return kctx.Cluster, cluster
		}
	}

	names := make([]string, 0, len(cfg.Clusters))
	for name := range cfg.Clusters {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[0], cfg.Clusters[names[0]]
}

// ServiceAccountCredential reads the token and CA bundle of a service account.
//
// The secret bound to the account is looked up first. Clusters that no
// longer create bound secrets return nothing, in which case a secret named
// after the account is assumed.
func (c *Client) ServiceAccountCredential(ctx context.Context, name, namespace string) (ServiceAccountInfo, error) {
	base := c.global.Add(cliopts.Opt("namespace", namespace))

	saOpts := base.Add(cliopts.Opt("output", secretNameJSONPath))
	saLine := fmt.Sprintf("%s get serviceAccount %s %s", c.cmd(), shellescape.Quote(name), saOpts)
	secretName, err := c.read(ctx, saLine)
	if err != nil {
		return ServiceAccountInfo{}, fmt.Errorf("failed to read service account %s/%s: %w", namespace, name, err)
	}
	secretName = strings.TrimSpace(secretName)
	if secretName == "" {
		c.logger.V(1).Info("Service account has no bound secret, using same-named secret", "serviceAccount", name)
		secretName = name
	}

	secretOpts := base.Add(cliopts.Opt("output", "json"))
	secretLine := fmt.Sprintf("%s get secret %s %s", c.cmd(), shellescape.Quote(secretName), secretOpts)
	stdout, err := c.readSensitive(ctx, secretLine)
	if err != nil {
		return ServiceAccountInfo{}, fmt.Errorf("failed to read secret %s/%s: %w", namespace, secretName, err)
	}

	token, caData, err := parseServiceAccountSecret([]byte(stdout))
	if err != nil {
		return ServiceAccountInfo{}, fmt.Errorf("secret %s/%s: %w", namespace, secretName, err)
	}

	return ServiceAccountInfo{
		Name:                     name,
		Namespace:                namespace,
		Token:                    token,
		CertificateAuthorityData: caData,
	}, nil
}

// serviceAccountSecret is the part of `kubectl get secret --output json`
// that is read. Data values stay base64 text.
type serviceAccountSecret struct {
	Data map[string]string `json:"data"`
}

// parseServiceAccountSecret extracts the decoded token and the CA bundle,
// still base64 and untouched, from `kubectl get secret --output json`.
func parseServiceAccountSecret(data []byte) (token, caData string, err error) {
	var secret serviceAccountSecret
	if err := json.Unmarshal(data, &secret); err != nil {
		return "", "", fmt.Errorf("failed to decode secret: %w", err)
	}

	rawToken := secret.Data[corev1.ServiceAccountTokenKey]
	if rawToken == "" {
		return "", "", fmt.Errorf("%w: missing %q", ErrSecretIncomplete, corev1.ServiceAccountTokenKey)
	}
	caData = secret.Data[corev1.ServiceAccountRootCAKey]
	if caData == "" {
		return "", "", fmt.Errorf("%w: missing %q", ErrSecretIncomplete, corev1.ServiceAccountRootCAKey)
	}

	decoded, err := decodeStrict(rawToken)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrCredentialDecode, corev1.ServiceAccountTokenKey, err)
	}
	return string(decoded), caData, nil
}

// decodeStrict decodes standard base64, rejecting any byte outside the
// alphabet. The stdlib decoder skips CR and LF even in strict mode.
func decodeStrict(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !isBase64Char(s[i]) {
			return nil, base64.CorruptInputError(i)
		}
	}
	return base64.StdEncoding.Strict().DecodeString(s)
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	default:
		return c == '+' || c == '/' || c == '='
	}
}

// RenderAccessConfig builds a kubeconfig granting access to the current
// cluster as the given service account.
func (c *Client) RenderAccessConfig(ctx context.Context, serviceAccountName, namespace string) (string, error) {
	cluster, err := c.CurrentClusterInfo(ctx)
	if err != nil {
		return "", err
	}

	sa, err := c.ServiceAccountCredential(ctx, serviceAccountName, namespace)
	if err != nil {
		return "", err
	}

	doc, err := RenderKubeconfig(cluster, sa)
	if err != nil {
		return "", err
	}

	c.logger.Info("Rendered kubeconfig", "serviceAccount", serviceAccountName, "namespace", namespace, "cluster", cluster.Name)
	return doc, nil
}

// Delete removes a named resource. Namespace may be empty for
// cluster-scoped resources. A resource that is already gone is not an error.
func (c *Client) Delete(ctx context.Context, resourceType, resourceName, namespace string) error {
	opts := c.global
	if namespace != "" {
		opts = opts.Add(cliopts.Opt("namespace", namespace))
	}
	target := shellescape.Quote(resourceType + "/" + resourceName)
	line := strings.TrimSpace(fmt.Sprintf("%s delete %s %s", c.cmd(), target, opts))

	c.logger.Info("Deleting resource", "type", resourceType, "name", resourceName, "namespace", namespace)
	res, err := c.runner.Run(ctx, runner.Command{Line: line, CaptureStderr: true})
	if err != nil {
		return fmt.Errorf("%w %s/%s: %w", ErrDeleteFailed, resourceType, resourceName, err)
	}
	if !res.Success() {
		if isNotFound(res.Stderr) {
			c.logger.Info("Resource has already been deleted", "type", resourceType, "name", resourceName)
			return nil
		}
		return fmt.Errorf("%w %s/%s: %s", ErrDeleteFailed, resourceType, resourceName, strings.TrimSpace(res.Stderr))
	}

	c.logger.Info("Deleted resource", "type", resourceType, "name", resourceName)
	return nil
}

// read runs a command and returns its stdout, failing on non-zero exit.
func (c *Client) read(ctx context.Context, line string) (string, error) {
	return c.run(ctx, runner.Command{Line: line, CaptureStdout: true, CaptureStderr: true})
}

// readSensitive is read for output that carries credentials.
func (c *Client) readSensitive(ctx context.Context, line string) (string, error) {
	return c.run(ctx, runner.Command{Line: line, CaptureStdout: true, CaptureStderr: true, Sensitive: true})
}

func (c *Client) run(ctx context.Context, cmd runner.Command) (string, error) {
	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf("%w (exit %d): %s", ErrCommandFailed, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return res.Stdout, nil
}

func (c *Client) cmd() string {
	return shellescape.Quote(c.binary)
}

// isNotFound reports whether kubectl's error text signals an absent resource.
func isNotFound(stderr string) bool {
	return strings.Contains(stderr, "NotFound") || strings.Contains(stderr, "not found")
}
