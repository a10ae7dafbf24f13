package runner

import (
	"context"
	"fmt"
	"sync"
)

// MockRunner is a mock implementation of Runner.
// Every call is recorded in Calls before RunFunc is invoked.
type MockRunner struct {
	RunFunc func(ctx context.Context, cmd Command) (*Result, error)

	mu    sync.Mutex
	Calls []Command
}

func (m *MockRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, cmd)
	m.mu.Unlock()

	if m.RunFunc == nil {
		return nil, fmt.Errorf("unexpected command: %s", cmd.Line)
	}
	return m.RunFunc(ctx, cmd)
}

// Lines returns the command lines received so far.
func (m *MockRunner) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		lines[i] = c.Line
	}
	return lines
}
