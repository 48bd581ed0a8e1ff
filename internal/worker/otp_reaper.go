package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/firstlight/backend/pkg/logger"

	"go.uber.org/zap"
)

type otpCleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

type otpReaper struct {
	otps otpCleaner
}

func newOtpReaper(otps otpCleaner) *otpReaper {
	return &otpReaper{
		otps: otps,
	}
}

func (r *otpReaper) Reap(ctx context.Context, source string) (int64, error) {
	started := time.Now()

	deleted, err := r.otps.Cleanup(ctx)
	if err != nil {
		logger.Error("otp reaper run failed", zap.String("source", source), zap.Error(err))
		return 0, fmt.Errorf("cleanup otps failed: %w", err)
	}

	logger.Info("otp reaper run finished",
		zap.String("source", source),
		zap.Int64("deleted", deleted),
		zap.Duration("took", time.Since(started)),
	)

	return deleted, nil
}
