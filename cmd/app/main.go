package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/firstlight/backend/internal/api/http"
	"github.com/firstlight/backend/internal/cache"
	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/db"
	"github.com/firstlight/backend/internal/metrics"
	queueClient "github.com/firstlight/backend/internal/queue/client"
	"github.com/firstlight/backend/internal/queue/task"
	"github.com/firstlight/backend/internal/repository"
	"github.com/firstlight/backend/internal/server"
	"github.com/firstlight/backend/internal/service"
	"github.com/firstlight/backend/pkg/auth"
	"github.com/firstlight/backend/pkg/cooldown"
	memorycooldown "github.com/firstlight/backend/pkg/cooldown/memory"
	rediscooldown "github.com/firstlight/backend/pkg/cooldown/redis"
	"github.com/firstlight/backend/pkg/email/smtp"
	"github.com/firstlight/backend/pkg/hash"
	"github.com/firstlight/backend/pkg/logger"
	"github.com/firstlight/backend/pkg/otp"
	"github.com/firstlight/backend/templates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger, err := logger.Init(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	appLogger.Info("starting backend api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(dbMySQL, cfg.Database.DBName); err != nil {
			appLogger.Fatal("database migration failed", zap.Error(err))
		}
		appLogger.Info("database migrations applied")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var rdb redis.UniversalClient
	var cooldownStore cooldown.Store
	switch cfg.OTP.CooldownStore {
	case cooldown.StoreRedis:
		rdb, err = cache.NewRedis(ctx, cfg.Cache)
		if err != nil {
			appLogger.Fatal("redis connect problem", zap.Error(err))
		}
		defer rdb.Close()
		cooldownStore = rediscooldown.New(rdb)
	default:
		memoryStore := memorycooldown.New()
		defer memoryStore.Close()
		go memoryStore.Run(ctx, time.Minute)
		cooldownStore = memoryStore
	}
	appLogger.Info("otp cooldown store ready", zap.String("store", cfg.OTP.CooldownStore))

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.FromName, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Fatal("smtp sender creation failed", zap.Error(err))
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Fatal("auth manager creation err", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otp.NewGOTPGenerator(),
		EmailSender:  emailSender,
		Cooldown:     cooldownStore,
		Metrics:      metrics.NewOtp(registry),
		Repos:        repos,
		Templates:    templates.FS,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, registry)

	// Kick one reaper run so a fresh deploy does not wait for the first cron tick.
	asynqClient := queueClient.New(cfg.Cache)
	defer asynqClient.Close()
	restoreClient := queueClient.SetClient(asynqClient)
	defer restoreClient()

	if info, err := queueClient.EnqueueCleanupOtps(ctx, task.SourceStartup); err != nil {
		appLogger.Warn("startup otp cleanup not enqueued", zap.Error(err))
	} else if info != nil {
		appLogger.Info("startup otp cleanup enqueued", zap.String("task_id", info.ID))
	}

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("addr", srv.Addr()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit
	stop()

	const timeout = 5 * time.Second

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(shutdownCtx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
