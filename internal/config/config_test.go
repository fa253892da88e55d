package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Planner.WorkerTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Planner.ResultTTL)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VOYAGO_HTTP_PORT", "9090")
	t.Setenv("VOYAGO_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("PLANNER_WORKER_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Second, cfg.Planner.WorkerTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPPort: 8080,
			LogLevel: "info",
			Backend:  "memory",
			Planner:  PlannerConfig{WorkerTimeout: 30 * time.Second},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.HTTPPort = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Backend = "redis"
	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Planner.WorkerTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := &Config{HTTPPort: 8080}
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}
