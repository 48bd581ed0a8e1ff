package asynqserver

import (
	"github.com/firstlight/backend/internal/cache"
	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/queue/processor"
	"github.com/firstlight/backend/internal/queue/task"
	"github.com/firstlight/backend/internal/worker"
	"github.com/firstlight/backend/pkg/logger"

	"github.com/hibiken/asynq"
)

func New(cfg *config.Config, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg.Cache),
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Logger:      logger.Logger().Sugar(),
			LogLevel:    asynq.WarnLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
		}
	} else {
		opts = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.CleanupOtpsTaskName, processor.NewCleanupOtpsProcessor(workers))
	queues := map[string]int{
		task.MaintenanceQueueName: 1,
	}
	return mux, queues
}
