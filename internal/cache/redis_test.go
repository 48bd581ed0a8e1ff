package cache

import (
	"context"
	"testing"

	"github.com/firstlight/backend/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisSingle(t *testing.T) {
	mr := miniredis.RunT(t)

	var cfg config.Cache
	cfg.Type = RedisTypeSingle
	cfg.Redis.Address = mr.Addr()
	cfg.Redis.PoolSize = 2

	client, err := NewRedis(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisUnknownType(t *testing.T) {
	var cfg config.Cache
	cfg.Type = "memcached"

	client, err := NewRedis(context.Background(), cfg)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrUnknownRedisType)
}

func TestNewRedisPingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	var cfg config.Cache
	cfg.Type = RedisTypeSingle
	cfg.Redis.Address = addr

	client, err := NewRedis(context.Background(), cfg)
	assert.Nil(t, client)
	assert.Error(t, err)
}
