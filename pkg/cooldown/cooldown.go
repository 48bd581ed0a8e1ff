// Package cooldown paces repeated actions per key: once a key is allowed it is
// denied until its cooldown elapses.
package cooldown

import (
	"context"
	"time"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Store interface {
	// Allow reports whether key may proceed now. An allowed call starts a new
	// cooldown for key; a denied call leaves the running one untouched.
	Allow(ctx context.Context, key string, cooldown time.Duration) (bool, error)
}
