package redisdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis/auralis/internal/config"
)

func TestNewClient_BasicConfig(t *testing.T) {
	cfg := &config.Config{
		RedisAddr:     "localhost:6379",
		RedisPassword: "secret",
		RedisDB:       15,
	}

	client := NewClient(cfg)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	assert.Equal(t, cfg.RedisAddr, opts.Addr)
	assert.Equal(t, cfg.RedisPassword, opts.Password)
	assert.Equal(t, cfg.RedisDB, opts.DB)
}

func TestLock_ReleaseWithoutAcquire(t *testing.T) {
	client := NewClient(&config.Config{RedisAddr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	lock := NewLock(client, SweepLockKey, time.Minute)
	assert.Equal(t, SweepLockKey, lock.key)
	// Nothing held, so no round trip is made.
	assert.NoError(t, lock.Release(context.Background()))
}

func TestLock_AcquireUnreachable(t *testing.T) {
	client := NewClient(&config.Config{RedisAddr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := NewLock(client, SweepLockKey, time.Minute).Acquire(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
}
