package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/db"
	"github.com/firstlight/backend/internal/metrics"
	"github.com/firstlight/backend/internal/queue/asynqserver"
	"github.com/firstlight/backend/internal/queue/scheduler"
	"github.com/firstlight/backend/internal/repository"
	"github.com/firstlight/backend/internal/server"
	"github.com/firstlight/backend/internal/service"
	"github.com/firstlight/backend/internal/worker"
	"github.com/firstlight/backend/pkg/auth"
	memorycooldown "github.com/firstlight/backend/pkg/cooldown/memory"
	"github.com/firstlight/backend/pkg/email/smtp"
	"github.com/firstlight/backend/pkg/hash"
	"github.com/firstlight/backend/pkg/logger"
	"github.com/firstlight/backend/pkg/otp"
	"github.com/firstlight/backend/templates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	appLogger, err := logger.Init(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	appLogger.Info("starting worker", zap.String("env", cfg.Env))

	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.FromName, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Fatal("smtp sender creation failed", zap.Error(err))
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Fatal("auth manager creation err", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	cooldownStore := memorycooldown.New()
	defer cooldownStore.Close()

	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hash.NewBcryptHasher(cfg.Auth.BcryptCost),
		TokenManager: tokenManager,
		OtpGenerator: otp.NewGOTPGenerator(),
		EmailSender:  emailSender,
		Cooldown:     cooldownStore,
		Metrics:      metrics.NewOtp(registry),
		Repos:        repository.NewRepositories(dbMySQL),
		Templates:    templates.FS,
	})

	workers := worker.NewWorkers(worker.Deps{Services: services})

	srv, mux := asynqserver.New(cfg, workers)
	if err := srv.Start(mux); err != nil {
		appLogger.Fatal("asynq server start failed", zap.Error(err))
	}

	sched, err := scheduler.New(cfg)
	if err != nil {
		appLogger.Fatal("scheduler creation failed", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		appLogger.Fatal("scheduler start failed", zap.Error(err))
	}

	metricsSrv := server.NewMetricsServer(cfg.Worker.MetricsPort, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		if err := metricsSrv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("metrics server failed", zap.Error(err))
		}
	}()

	appLogger.Info("worker started", zap.Int("concurrency", cfg.Worker.Concurrency), zap.String("metrics_addr", metricsSrv.Addr()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	sched.Shutdown()
	srv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Stop(shutdownCtx); err != nil {
		appLogger.Error("failed to stop metrics server", zap.Error(err))
	}

	appLogger.Info("worker stopped")
}
