package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/runner"
)

type Status int

const (
	Inactive Status = iota
	Active
)

// Gate pauses and resumes the host service around a sync run. A stop or
// start failure is surfaced to the run but never blocks mod synchronization.
type Gate interface {
	Status(ctx context.Context) (Status, error)
	Stop(ctx context.Context) error
	Start(ctx context.Context) error
}

// SystemdGate drives one systemd unit through systemctl.
type SystemdGate struct {
	Unit   string
	Runner runner.CommandRunner

	timeout time.Duration
}

func NewSystemdGate(unit string, r runner.CommandRunner) *SystemdGate {
	if r == nil {
		r = runner.ExecRunner{}
	}
	return &SystemdGate{Unit: unit, Runner: r, timeout: 30 * time.Second}
}

func (g *SystemdGate) Status(ctx context.Context) (Status, error) {
	out, err := g.Runner.Run(ctx, g.timeout, "systemctl", "is-active", g.Unit)
	state := strings.TrimSpace(string(out))

	// systemctl exits non-zero for every non-active state, so only treat
	// an error with no recognizable output as a real failure.
	if state == "active" || state == "activating" {
		return Active, nil
	}
	if state != "" {
		return Inactive, nil
	}
	if err != nil {
		return Inactive, fmt.Errorf("%w: is-active %s: %v", errs.ErrLifecycle, g.Unit, err)
	}
	return Inactive, nil
}

func (g *SystemdGate) Stop(ctx context.Context) error {
	if out, err := g.Runner.Run(ctx, g.timeout, "systemctl", "stop", g.Unit); err != nil {
		return fmt.Errorf("%w: stop %s: %v (%s)", errs.ErrLifecycle, g.Unit, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (g *SystemdGate) Start(ctx context.Context) error {
	if out, err := g.Runner.Run(ctx, g.timeout, "systemctl", "start", g.Unit); err != nil {
		return fmt.Errorf("%w: start %s: %v (%s)", errs.ErrLifecycle, g.Unit, err, strings.TrimSpace(string(out)))
	}
	return nil
}
