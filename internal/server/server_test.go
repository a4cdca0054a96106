package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis/auralis/internal/app"
	"github.com/auralis/auralis/internal/config"
	"github.com/auralis/auralis/internal/db/dbtest"
)

func newApp(t *testing.T, port string, sweep bool) *app.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:              "development",
		Port:                port,
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		GoalTimezone:        "UTC",
		GoalSweepEnabled:    sweep,
		GoalSweepInterval:   time.Minute,
		GoalHistoryMaxWeeks: 52,
	}
	return app.Build(cfg, dbtest.New(t))
}

func TestRun_StopsOnCancel(t *testing.T) {
	a := newApp(t, "0", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, a) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ReturnsListenError(t *testing.T) {
	a := newApp(t, "not-a-port", false)

	err := Run(context.Background(), a)
	require.Error(t, err)
}
