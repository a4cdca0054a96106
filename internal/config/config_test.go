package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg := Load()

	assert.Equal(t, "Auralis", cfg.AppName)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "UTC", cfg.GoalTimezone)
	assert.Equal(t, 15*time.Minute, cfg.GoalSweepInterval)
	assert.Equal(t, 52, cfg.GoalHistoryMaxWeeks)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.SweeperEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("GOAL_TIMEZONE", "America/New_York")
	t.Setenv("GOAL_SWEEP_INTERVAL", "1m")
	t.Setenv("GOAL_HISTORY_MAX_WEEKS", "8")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.GoalSweepInterval)
	assert.Equal(t, 8, cfg.GoalHistoryMaxWeeks)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3, cfg.RedisDB)

	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("GOAL_SWEEP_INTERVAL", "soon")
	t.Setenv("GOAL_HISTORY_MAX_WEEKS", "many")
	t.Setenv("GOAL_SWEEP_ENABLED", "maybe")
	t.Setenv("GOAL_TIMEZONE", "Mars/Olympus_Mons")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.GoalSweepInterval)
	assert.Equal(t, 52, cfg.GoalHistoryMaxWeeks)
	assert.True(t, cfg.GoalSweepEnabled)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestSweeperEnabled_Disabled(t *testing.T) {
	setRequired(t)
	t.Setenv("GOAL_SWEEP_ENABLED", "false")

	cfg := Load()
	assert.False(t, cfg.SweeperEnabled())

	cfg = &Config{GoalSweepEnabled: true, GoalSweepInterval: 0}
	assert.False(t, cfg.SweeperEnabled())
}
