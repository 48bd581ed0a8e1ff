package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firstlight/backend/internal/queue/task"
	"github.com/firstlight/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type cleanupOtpsProcessor struct {
	workers *worker.Workers
}

func NewCleanupOtpsProcessor(workers *worker.Workers) *cleanupOtpsProcessor {
	return &cleanupOtpsProcessor{
		workers: workers,
	}
}

func (p *cleanupOtpsProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.CleanupOtps
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process cleanup otps task json unmarshal failed: %w: %w", err, asynq.SkipRetry)
	}

	if _, err = p.workers.OtpReaper.Reap(ctx, data.Source); err != nil {
		return fmt.Errorf("reap expired otps failed: %w", err)
	}

	return nil
}
