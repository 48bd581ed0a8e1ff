package rediscooldown

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "cooldown:"

// Store keeps cooldowns in redis so that every instance shares them.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

func New(rdb redis.UniversalClient) *Store {
	return &Store{rdb: rdb, prefix: defaultPrefix}
}

// Allow relies on SET NX PX: only the first caller inside the window creates
// the key, and redis expires it when the cooldown ends.
func (s *Store) Allow(ctx context.Context, key string, cooldown time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, s.prefix+key, time.Now().UnixMilli(), cooldown).Result()
}
