package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// DefaultShell is the shell used to interpret command lines.
const DefaultShell = "/bin/sh"

const redacted = "[redacted]"

// Command describes a single shell invocation.
type Command struct {
	// Line is the complete, already-quoted shell command line.
	Line string

	// Input is written to the process's standard input, which is then closed.
	// An empty Input leaves stdin unattached.
	Input string

	// CaptureStdout and CaptureStderr select which streams are kept.
	// Uncaptured streams are discarded.
	CaptureStdout bool
	CaptureStderr bool

	// Sensitive keeps captured stdout out of the logs.
	Sensitive bool
}

// Result holds the outcome of a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes shell command lines.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ShellRunner runs commands through a POSIX shell.
type ShellRunner struct {
	shell   string
	logger  logr.Logger
	metrics *Metrics
}

// Option configures a ShellRunner.
type Option func(*ShellRunner)

// WithShell overrides the interpreting shell.
func WithShell(shell string) Option {
	return func(r *ShellRunner) {
		if shell != "" {
			r.shell = shell
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger logr.Logger) Option {
	return func(r *ShellRunner) {
		r.logger = logger
	}
}

// WithMetrics records command counts and durations.
func WithMetrics(m *Metrics) Option {
	return func(r *ShellRunner) {
		r.metrics = m
	}
}

// NewShellRunner creates a ShellRunner.
func NewShellRunner(opts ...Option) *ShellRunner {
	r := &ShellRunner{
		shell:  DefaultShell,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run spawns the command and waits for it to exit.
func (r *ShellRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("command not started: %w", err)
	}

	r.logger.V(1).Info("running command", "command", cmd.Line)

	// #nosec G204 - command lines are assembled from shell-quoted option sets
	proc := exec.Command(r.shell, "-c", cmd.Line)

	if cmd.Input != "" {
		proc.Stdin = strings.NewReader(cmd.Input)
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = io.Discard
	proc.Stderr = io.Discard
	if cmd.CaptureStdout {
		proc.Stdout = &stdout
	}
	if cmd.CaptureStderr {
		proc.Stderr = &stderr
	}

	start := time.Now()
	err := proc.Run()
	elapsed := time.Since(start)

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.metrics.observe(cmd.Line, resultError, elapsed)
			return nil, fmt.Errorf("failed to run %q: %w", toolName(cmd.Line), err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	outcome := resultSuccess
	if !result.Success() {
		outcome = resultFailure
	}
	r.metrics.observe(cmd.Line, outcome, elapsed)

	loggedStdout := result.Stdout
	if cmd.Sensitive && loggedStdout != "" {
		loggedStdout = redacted
	}
	r.logger.V(2).Info("command finished",
		"command", truncate(cmd.Line, 40),
		"exitCode", result.ExitCode,
		"duration", elapsed.String(),
		"stdout", loggedStdout,
		"stderr", result.Stderr,
	)

	return result, nil
}

// toolName returns the first word of a command line.
func toolName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
