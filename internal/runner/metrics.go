package runner

import (
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

// Metrics holds command execution metrics.
type Metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
}

// NewMetrics creates runner metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sparkop",
				Subsystem: "runner",
				Name:      "commands_total",
				Help:      "Total number of external commands by tool and result",
			},
			[]string{"tool", "result"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sparkop",
				Subsystem: "runner",
				Name:      "command_duration_seconds",
				Help:      "Duration of external commands in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
			[]string{"tool"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.commandsTotal, m.commandDuration)
	}
	return m
}

func (m *Metrics) observe(line, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	tool := filepath.Base(toolName(line))
	m.commandsTotal.WithLabelValues(tool, result).Inc()
	m.commandDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
