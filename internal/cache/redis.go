package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firstlight/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	RedisTypeSingle  = "redis"
	RedisTypeCluster = "redisCluster"

	pingTimeout = 1500 * time.Millisecond
	ioTimeout   = time.Second
)

var ErrUnknownRedisType = errors.New("wrong redis type")

// NewRedis connects to the configured redis deployment and checks it with a
// ping. The client is closed again when the ping fails.
func NewRedis(ctx context.Context, cfg config.Cache) (redis.UniversalClient, error) {
	const op = "cache.NewRedis"

	var client redis.UniversalClient
	switch cfg.Type {
	case RedisTypeSingle:
		client = redis.NewClient(&redis.Options{
			Addr:            cfg.Redis.Address,
			Password:        cfg.Redis.Password,
			PoolSize:        cfg.Redis.PoolSize,
			ConnMaxIdleTime: 170 * time.Second,
			DialTimeout:     ioTimeout,
			ReadTimeout:     ioTimeout,
			WriteTimeout:    ioTimeout,
		})
	case RedisTypeCluster:
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
			// cooldown keys must be read from the node that wrote them
			RouteRandomly:   false,
			ReadOnly:        false,
			PoolSize:        cfg.RedisCluster.PoolSize,
			ConnMaxLifetime: 15 * time.Minute,
			DialTimeout:     ioTimeout,
			ReadTimeout:     ioTimeout,
			WriteTimeout:    ioTimeout,
		})
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownRedisType, cfg.Type)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return client, nil
}
