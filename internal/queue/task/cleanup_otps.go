package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	CleanupOtpsTaskName  = "otp:cleanup"
	MaintenanceQueueName = "maintenance"

	cleanupOtpsTimeout = 5 * time.Minute
)

const (
	SourceScheduler = "scheduler"
	SourceStartup   = "startup"
)

type CleanupOtps struct {
	Source string `json:"source"`
}

func NewCleanupOtpsTask(source string) (*asynq.Task, error) {
	data := CleanupOtps{Source: source}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		CleanupOtpsTaskName,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(MaintenanceQueueName),
		asynq.Timeout(cleanupOtpsTimeout),
	), nil
}
