package logging

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	// FormatAuto uses console encoding on a terminal and JSON otherwise.
	FormatAuto Format = ""
	// FormatConsole is human-readable, one line per entry.
	FormatConsole Format = "console"
	// FormatJSON is one JSON object per entry.
	FormatJSON Format = "json"
)

// Options configures New.
type Options struct {
	// Verbosity is the -v count. Zero logs errors only, one adds info
	// logs, and each further step enables the next V level.
	Verbosity int
	// Quiet disables logging entirely. It wins over Verbosity.
	Quiet bool
	// Output defaults to os.Stderr.
	Output io.Writer
	Format Format
}

// New creates a zap-backed logr.Logger.
func New(opts Options) logr.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := Level(opts.Verbosity)
	if opts.Quiet {
		level = zapcore.FatalLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if useConsole(opts.Format, out) {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	return zapr.NewLogger(zap.New(core))
}

// Level maps a -v count to the lowest enabled zap level.
func Level(verbosity int) zapcore.Level {
	if verbosity <= 0 {
		return zapcore.ErrorLevel
	}
	return zapcore.Level(1 - verbosity)
}

func useConsole(format Format, out io.Writer) bool {
	switch format {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	default:
		return IsTerminal(out)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
