package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/internal/metrics"
	"github.com/firstlight/backend/internal/repository"
	"github.com/firstlight/backend/pkg/cooldown"
	"github.com/firstlight/backend/pkg/logger"
	"github.com/firstlight/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type otpService struct {
	otpRepository repository.Otps
	cooldown      cooldown.Store
	generator     otp.Generator
	notifications Notifications
	metrics       *metrics.Otp
	config        config.OTPConfig
	now           func() time.Time
}

func newOtpService(otpRepository repository.Otps,
	cooldownStore cooldown.Store,
	generator otp.Generator,
	notifications Notifications,
	otpMetrics *metrics.Otp,
	config config.OTPConfig,
) *otpService {
	return &otpService{
		otpRepository: otpRepository,
		cooldown:      cooldownStore,
		generator:     generator,
		notifications: notifications,
		metrics:       otpMetrics,
		config:        config,
		now:           time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func rateLimitKey(email string, purpose domain.OtpPurpose) string {
	return email + ":" + string(purpose)
}

// validity returns the window for purpose when the caller did not pick one.
func (s *otpService) validity(purpose domain.OtpPurpose) time.Duration {
	if purpose == domain.OtpPurposeTwoFactorAuth && s.config.TwoFactorValidity > 0 {
		return s.config.TwoFactorValidity
	}
	if s.config.Validity > 0 {
		return s.config.Validity
	}
	return 10 * time.Minute
}

func (s *otpService) codeLength() int {
	if s.config.CodeLength > 0 {
		return s.config.CodeLength
	}
	return 6
}

// Generate supersedes every unused code for (email, purpose) with a fresh one.
// A zero validity selects the configured default for purpose.
func (s *otpService) Generate(ctx context.Context, email string, purpose domain.OtpPurpose, validity time.Duration) (*domain.Otp, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if !purpose.Valid() {
		return nil, ErrInvalidOtpPurpose
	}
	if validity < 0 {
		return nil, ErrInvalidOtpValidity
	}
	if validity == 0 {
		validity = s.validity(purpose)
	}

	record, err := s.replace(ctx, email, purpose, validity)
	if errors.Is(err, domain.ErrDuplicateEntry) {
		// A concurrent generation for the same key committed first; ours
		// supersedes it on the second attempt.
		record, err = s.replace(ctx, email, purpose, validity)
	}
	if err != nil {
		return nil, fmt.Errorf("store otp failed: %w", err)
	}

	s.metrics.Issued.WithLabelValues(purpose.String()).Inc()

	return record, nil
}

func (s *otpService) replace(ctx context.Context, email string, purpose domain.OtpPurpose, validity time.Duration) (*domain.Otp, error) {
	code, err := s.generator.Code(s.codeLength())
	if err != nil {
		return nil, fmt.Errorf("generate otp code failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate otp id failed: %w", err)
	}

	now := s.now()
	record := &domain.Otp{
		ID:        id,
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(validity),
		CreatedAt: now,
	}

	invalidated, err := s.otpRepository.Replace(ctx, record)
	if err != nil {
		return nil, err
	}

	logger.Debug("otp issued",
		zap.String("email", email),
		zap.String("purpose", purpose.String()),
		zap.Int64("invalidated", invalidated),
		zap.Time("expires_at", record.ExpiresAt),
	)

	return record, nil
}

// Verify consumes the newest live code matching all three arguments. Wrong,
// expired and already used codes are reported identically.
func (s *otpService) Verify(ctx context.Context, email string, code string, purpose domain.OtpPurpose) (*domain.OtpVerification, error) {
	email = normalizeEmail(email)

	err := s.otpRepository.Consume(ctx, email, code, purpose, s.now())
	switch {
	case err == nil:
		s.metrics.Verifications.WithLabelValues(purpose.String(), metrics.ResultValid).Inc()
		return &domain.OtpVerification{Valid: true, Message: OtpVerifiedMessage}, nil
	case errors.Is(err, domain.ErrNoRowsAffected):
		s.metrics.Verifications.WithLabelValues(purpose.String(), metrics.ResultInvalid).Inc()
		return &domain.OtpVerification{Valid: false, Message: OtpInvalidOrExpiredMessage}, nil
	default:
		s.metrics.Verifications.WithLabelValues(purpose.String(), metrics.ResultError).Inc()
		logger.Error("otp verification failed",
			zap.String("email", email),
			zap.String("purpose", purpose.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("consume otp failed: %w", err)
	}
}

// IsValid checks a code without consuming it.
func (s *otpService) IsValid(ctx context.Context, email string, code string, purpose domain.OtpPurpose) (bool, error) {
	ok, err := s.otpRepository.IsValid(ctx, normalizeEmail(email), code, purpose, s.now())
	if err != nil {
		return false, fmt.Errorf("check otp failed: %w", err)
	}
	return ok, nil
}

// CheckRateLimit paces requests per (email, purpose). The store is advisory,
// so its failures let the request through; the hourly cap still applies.
func (s *otpService) CheckRateLimit(ctx context.Context, email string, purpose domain.OtpPurpose) bool {
	email = normalizeEmail(email)

	allowed, err := s.cooldown.Allow(ctx, rateLimitKey(email, purpose), s.config.Cooldown)
	if err != nil {
		logger.Warn("otp cooldown store failed, allowing request",
			zap.String("email", email),
			zap.String("purpose", purpose.String()),
			zap.Error(err),
		)
		return true
	}
	return allowed
}

// GetStats counts codes created for email within the trailing window.
func (s *otpService) GetStats(ctx context.Context, email string, window time.Duration) (int, error) {
	if window <= 0 {
		window = s.config.StatsWindow
	}

	count, err := s.otpRepository.CountCreatedSince(ctx, normalizeEmail(email), s.now().Add(-window))
	if err != nil {
		return 0, fmt.Errorf("count otp failed: %w", err)
	}
	return count, nil
}

// Send paces, caps, issues and delivers a code. When delivery fails the code
// stays valid and is returned together with ErrOtpDeliveryFailed.
func (s *otpService) Send(ctx context.Context, email string, userName string, purpose domain.OtpPurpose) (*domain.Otp, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if !purpose.Valid() {
		return nil, ErrInvalidOtpPurpose
	}

	log := logger.Logger().With(zap.String("email", email), zap.String("purpose", purpose.String()))

	if !s.CheckRateLimit(ctx, email, purpose) {
		s.metrics.Rejected.WithLabelValues(purpose.String(), metrics.ReasonCooldown).Inc()
		log.Info("otp request rejected by cooldown")
		return nil, ErrOtpRateLimited
	}

	recent, err := s.GetStats(ctx, email, s.config.StatsWindow)
	if err != nil {
		log.Error("otp stats lookup failed", zap.Error(err))
		return nil, err
	}
	if recent >= s.config.HourlyLimit {
		s.metrics.Rejected.WithLabelValues(purpose.String(), metrics.ReasonHourly).Inc()
		log.Warn("otp request rejected by hourly limit", zap.Int("recent", recent))
		return nil, ErrOtpAbuseThreshold
	}

	record, err := s.Generate(ctx, email, purpose, 0)
	if err != nil {
		log.Error("otp generation failed", zap.Error(err))
		return nil, err
	}

	receipt, err := s.notifications.SendOtp(ctx, OtpEmailInput{
		Email:     email,
		UserName:  userName,
		Code:      record.Code,
		Purpose:   purpose,
		ExpiresIn: record.ExpiresAt.Sub(record.CreatedAt),
	})
	if err != nil {
		s.metrics.DeliveryFailures.WithLabelValues(purpose.String()).Inc()
		log.Error("otp delivery failed", zap.String("otp_id", record.ID.String()), zap.Error(err))
		return record, fmt.Errorf("%w: %w", ErrOtpDeliveryFailed, err)
	}

	log.Info("otp sent", zap.String("otp_id", record.ID.String()), zap.String("message_id", receipt.MessageID))

	return record, nil
}

// Cleanup hard-deletes codes that expired more than the retention window ago.
func (s *otpService) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.config.Retention)

	deleted, err := s.otpRepository.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired otp failed: %w", err)
	}

	s.metrics.Reaped.Add(float64(deleted))
	logger.Info("expired otp reaped", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))

	return deleted, nil
}
