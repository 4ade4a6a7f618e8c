package lifecycle

import (
	"context"
	"fmt"
	"testing"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	m.Run()
}

func TestSystemdGate_Status(t *testing.T) {
	r := runner.NewMockRunner()
	r.Responses["systemctl is-active game.service"] = runner.MockResponse{Output: []byte("active\n")}

	gate := NewSystemdGate("game.service", r)
	st, err := gate.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Active, st)

	require.Len(t, r.Commands, 1)
	assert.Equal(t, []string{"is-active", "game.service"}, r.Commands[0].Args)
}

func TestSystemdGate_StatusInactive(t *testing.T) {
	r := runner.NewMockRunner()
	// systemctl prints the state and exits non-zero for anything not active
	r.Responses["systemctl is-active game.service"] = runner.MockResponse{
		Output: []byte("inactive\n"),
		Error:  fmt.Errorf("exit status 3"),
	}

	gate := NewSystemdGate("game.service", r)
	st, err := gate.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Inactive, st)
}

func TestSystemdGate_StatusFailure(t *testing.T) {
	r := runner.NewMockRunner()
	r.Responses["systemctl is-active game.service"] = runner.MockResponse{
		Error: fmt.Errorf("systemctl not found"),
	}

	gate := NewSystemdGate("game.service", r)
	_, err := gate.Status(context.Background())
	assert.ErrorIs(t, err, errs.ErrLifecycle)
}

func TestSystemdGate_StopStart(t *testing.T) {
	r := runner.NewMockRunner()
	gate := NewSystemdGate("game.service", r)

	require.NoError(t, gate.Stop(context.Background()))
	require.NoError(t, gate.Start(context.Background()))

	require.Len(t, r.Commands, 2)
	assert.Equal(t, []string{"stop", "game.service"}, r.Commands[0].Args)
	assert.Equal(t, []string{"start", "game.service"}, r.Commands[1].Args)
}

func TestSystemdGate_StopFailure(t *testing.T) {
	r := runner.NewMockRunner()
	r.Responses["systemctl stop game.service"] = runner.MockResponse{
		Output: []byte("Failed to stop game.service"),
		Error:  fmt.Errorf("exit status 1"),
	}

	gate := NewSystemdGate("game.service", r)
	err := gate.Stop(context.Background())
	assert.ErrorIs(t, err, errs.ErrLifecycle)
}
