package runner

import (
	"context"
	"os/exec"
	"time"
)

// CommandRunner abstracts external process execution so exec-backed
// collaborators (systemctl) can be faked in tests.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(parent context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
