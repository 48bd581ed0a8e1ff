package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/queue/asynqserver"
	"github.com/firstlight/backend/internal/queue/task"

	"github.com/hibiken/asynq"
)

type ctxKey int

const (
	_ ctxKey = iota
	asyncQCtxKey
)

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

var ErrNoClient = errors.New("asynq client is not configured")

// replicas starting together must not queue one reaper run each
const oneOffUniqueness = time.Minute

func New(cfg config.Cache) *asynq.Client {
	return asynq.NewClient(asynqserver.RedisOptions(cfg))
}

// WithClient returns a copy of ctx carrying client, which GetClient prefers
// over the global one.
func WithClient(ctx context.Context, client *asynq.Client) context.Context {
	return context.WithValue(ctx, asyncQCtxKey, client)
}

// GetClient returns the Client stored in ctx or the global one set with
// SetClient. It's safe for concurrent use.
func GetClient(ctx context.Context) *asynq.Client {
	if c := ctx.Value(asyncQCtxKey); c != nil {
		client, _ := c.(*asynq.Client)
		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// SetClient replaces the global Client, and returns a
// function to restore the original value. It's safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// EnqueueCleanupOtps queues a single reaper run outside the cron schedule.
// It returns a nil TaskInfo and no error when an identical run is already
// queued.
func EnqueueCleanupOtps(ctx context.Context, source string) (*asynq.TaskInfo, error) {
	client := GetClient(ctx)
	if client == nil {
		return nil, ErrNoClient
	}

	t, err := task.NewCleanupOtpsTask(source)
	if err != nil {
		return nil, err
	}

	info, err := client.EnqueueContext(ctx, t, asynq.Unique(oneOffUniqueness))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enqueue %s failed: %w", task.CleanupOtpsTaskName, err)
	}

	return info, nil
}
