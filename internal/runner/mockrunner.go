package runner

import (
	"context"
	"strings"
	"time"
)

type MockCommand struct {
	Name string
	Args []string
}

type MockResponse struct {
	Output []byte
	Error  error
}

// MockRunner records every command and answers from a keyed response map
// ("name arg1 arg2..." joined with spaces).
type MockRunner struct {
	Commands  []MockCommand
	Responses map[string]MockResponse
}

func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]MockResponse)}
}

func (m *MockRunner) Run(_ context.Context, _ time.Duration, name string, args ...string) ([]byte, error) {
	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})

	key := strings.Join(append([]string{name}, args...), " ")
	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Error
	}
	return nil, nil
}
