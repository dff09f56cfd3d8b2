package testutil

import (
	"context"
	"sync"
)

// RunCall is one invocation seen by MockRunner
type RunCall struct {
	Command string
	Cwd     string
}

// MockRunner is a mock implementation of shell.Runner
type MockRunner struct {
	// RunFunc, when set, decides the result of each call
	RunFunc func(command, cwd string) (int, error)
	// ExitCode is returned when RunFunc is nil
	ExitCode int

	mu    sync.Mutex
	Calls []RunCall
}

// Run records the call and returns the mocked result
func (m *MockRunner) Run(_ context.Context, command, cwd string) (int, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, RunCall{Command: command, Cwd: cwd})
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(command, cwd)
	}
	return m.ExitCode, nil
}

// MockBaseDir is a paths.BaseDir returning fixed directories
type MockBaseDir struct {
	Dir       string
	Canonical string
	Err       error
}

// Resolve returns Canonical when canonicalize is set and non-empty, Dir otherwise
func (m *MockBaseDir) Resolve(canonicalize bool) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if canonicalize && m.Canonical != "" {
		return m.Canonical, nil
	}
	return m.Dir, nil
}
