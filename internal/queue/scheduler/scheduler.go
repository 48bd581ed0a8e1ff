package scheduler

import (
	"fmt"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/queue/asynqserver"
	"github.com/firstlight/backend/internal/queue/task"
	"github.com/firstlight/backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ParseCron validates spec with the standard five-field parser asynq uses.
func ParseCron(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return schedule, nil
}

// New builds a scheduler that enqueues the otp reaper on cfg.OTP.ReaperCron.
func New(cfg *config.Config) (*asynq.Scheduler, error) {
	schedule, err := ParseCron(cfg.OTP.ReaperCron)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(asynqserver.RedisOptions(cfg.Cache), &asynq.SchedulerOpts{
		Logger:   logger.Logger().Sugar(),
		LogLevel: asynq.WarnLevel,
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Error("scheduled task enqueue failed", zap.Error(err))
				return
			}
			logger.Debug("scheduled task enqueued", zap.String("task", info.Type), zap.String("id", info.ID))
		},
	})

	t, err := task.NewCleanupOtpsTask(task.SourceScheduler)
	if err != nil {
		return nil, err
	}

	entryID, err := scheduler.Register(cfg.OTP.ReaperCron, t, asynq.Unique(time.Minute))
	if err != nil {
		return nil, fmt.Errorf("register otp cleanup failed: %w", err)
	}

	logger.Info("otp reaper scheduled",
		zap.String("entry_id", entryID),
		zap.String("cron", cfg.OTP.ReaperCron),
		zap.Time("next_run", schedule.Next(time.Now().UTC())),
	)

	return scheduler, nil
}
