package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/viper"

	"github.com/mlops-platform/sparkop/internal/config"
	"github.com/mlops-platform/sparkop/internal/helm"
	"github.com/mlops-platform/sparkop/internal/kubectl"
	"github.com/mlops-platform/sparkop/internal/logging"
	"github.com/mlops-platform/sparkop/internal/operator"
	"github.com/mlops-platform/sparkop/internal/runner"
	"github.com/mlops-platform/sparkop/internal/util/prerequisites"
)

// pushJob is the Pushgateway job name for runner metrics.
const pushJob = "sparkop"

// GlobalOptions carries the root command's persistent flags.
type GlobalOptions struct {
	ConfigPath string
	Verbose    int
	Quiet      bool
	// Viper has the flags that override configuration keys bound to it.
	Viper *viper.Viper
}

// Controller is the lifecycle API the handlers drive.
type Controller interface {
	ListReleases(ctx context.Context, namespace string) ([]helm.Release, error)
	Install(ctx context.Context, namespace, releaseName string, values map[string]interface{}) (helm.Release, error)
	Uninstall(ctx context.Context, namespace string) (helm.Release, error)
	KubectlConfig(ctx context.Context, namespace string) (string, error)
}

// Factory functions for dependency injection in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	loadConfig = func(g *GlobalOptions) (*config.Config, error) {
		v := g.Viper
		if v == nil {
			v = viper.New()
		}
		return config.Load(v, g.ConfigPath)
	}

	checkTools = func(ctx context.Context, cfg *config.Config) error {
		return prerequisites.Check(ctx, prerequisites.DefaultTools(cfg.Helm.Binary, cfg.Kubectl.Binary), false).Error()
	}

	newController = func(cfg *config.Config, r runner.Runner, log logr.Logger) Controller {
		chart := helm.NewClient(r,
			helm.WithBinary(cfg.Helm.Binary),
			helm.WithGlobalOptions(cfg.HelmOptions()),
			helm.WithLogger(log.WithName("helm")),
		)
		cluster := kubectl.NewClient(r,
			kubectl.WithBinary(cfg.Kubectl.Binary),
			kubectl.WithGlobalOptions(cfg.KubectlOptions()),
			kubectl.WithLogger(log.WithName("kubectl")),
		)
		return operator.NewController(chart, cluster,
			operator.WithChart(cfg.Chart.Name, cfg.Chart.Version),
			operator.WithTimeout(cfg.Timeout),
			operator.WithLogger(log.WithName("operator")),
		)
	}

	pushMetrics = func(url string, g prometheus.Gatherer) error {
		return push.New(url, pushJob).Gatherer(g).Push()
	}
)

// session holds everything one command invocation needs.
type session struct {
	cfg        *config.Config
	log        logr.Logger
	controller Controller
	registry   *prometheus.Registry
}

// newSession loads configuration, checks tools and wires the controller.
func newSession(ctx context.Context, g *GlobalOptions) (*session, error) {
	log := logging.New(logging.Options{Verbosity: g.Verbose, Quiet: g.Quiet, Output: stderr})

	cfg, err := loadConfig(g)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := checkTools(ctx, cfg); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	r := runner.NewShellRunner(
		runner.WithShell(cfg.Shell),
		runner.WithLogger(log.WithName("runner")),
		runner.WithMetrics(runner.NewMetrics(registry)),
	)

	return &session{
		cfg:        cfg,
		log:        log,
		controller: newController(cfg, r, log),
		registry:   registry,
	}, nil
}

// finish pushes the session's runner metrics when a Pushgateway is set.
// A failed push is logged, never returned.
func (s *session) finish() {
	url := s.cfg.Metrics.Pushgateway
	if url == "" {
		return
	}
	if err := pushMetrics(url, s.registry); err != nil {
		s.log.Error(err, "Failed to push metrics", "pushgateway", url)
		return
	}
	s.log.V(1).Info("Pushed metrics", "pushgateway", url)
}
