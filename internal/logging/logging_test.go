package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// messages decodes JSON log lines and returns their msg fields.
func messages(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry["msg"].(string))
	}
	return out
}

func TestNew_Verbosity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		verbosity int
		quiet     bool
		expected  []string
	}{
		{"default", 0, false, []string{"error"}},
		{"info", 1, false, []string{"info", "error"}},
		{"commands", 2, false, []string{"info", "command", "error"}},
		{"output", 3, false, []string{"info", "command", "output", "error"}},
		{"quiet", 3, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := New(Options{Verbosity: tt.verbosity, Quiet: tt.quiet, Output: &buf, Format: FormatJSON})

			log.Info("info")
			log.V(1).Info("command")
			log.V(2).Info("output")
			log.Error(errors.New("boom"), "error")

			assert.Equal(t, tt.expected, messages(t, &buf))
		})
	}
}

func TestNew_KeyValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := New(Options{Verbosity: 1, Output: &buf, Format: FormatJSON})

	log.Info("Installed spark operator", "namespace", "team-a")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "team-a", entry["namespace"])
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := New(Options{Verbosity: 1, Output: &buf, Format: FormatConsole})

	log.Info("hello", "k", "v")

	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_AutoFormatOnBufferIsJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(Options{Verbosity: 1, Output: &buf}).Info("hello")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, zapcore.ErrorLevel, Level(-1))
	assert.Equal(t, zapcore.ErrorLevel, Level(0))
	assert.Equal(t, zapcore.InfoLevel, Level(1))
	assert.Equal(t, zapcore.DebugLevel, Level(2))
	assert.Equal(t, zapcore.Level(-2), Level(3))
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
