package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/internal/metrics"
	mock_repository "github.com/firstlight/backend/internal/repository/mock"
	"github.com/firstlight/backend/pkg/email"
	memorycooldown "github.com/firstlight/backend/pkg/cooldown/memory"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceGenerator hands out 000001, 000002, ... so tests know every code.
type sequenceGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceGenerator) RandomSecret(int) string { return "" }

func (g *sequenceGenerator) Code(digits int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%0*d", digits, g.n), nil
}

type recordingNotifications struct {
	mu   sync.Mutex
	sent []OtpEmailInput
	err  error
}

func (n *recordingNotifications) SendOtp(_ context.Context, input OtpEmailInput) (*email.Receipt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	n.sent = append(n.sent, input)
	return &email.Receipt{MessageID: uuid.NewString()}, nil
}

// memoryOtps mirrors the SQL repository semantics over a slice.
type memoryOtps struct {
	mu   sync.Mutex
	rows []domain.Otp
}

func (r *memoryOtps) Replace(_ context.Context, otp *domain.Otp) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var invalidated int64
	for i := range r.rows {
		row := &r.rows[i]
		if row.Email == otp.Email && row.Purpose == otp.Purpose && !row.Used {
			usedAt := otp.CreatedAt
			row.Used = true
			row.UsedAt = &usedAt
			invalidated++
		}
	}
	r.rows = append(r.rows, *otp)
	return invalidated, nil
}

func (r *memoryOtps) Consume(_ context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.matching(email, code, purpose, now)
	if len(idx) == 0 {
		return domain.ErrNoRowsAffected
	}
	sort.Slice(idx, func(a, b int) bool { return r.rows[idx[a]].CreatedAt.After(r.rows[idx[b]].CreatedAt) })

	row := &r.rows[idx[0]]
	usedAt := now
	row.Used = true
	row.UsedAt = &usedAt
	return nil
}

func (r *memoryOtps) IsValid(_ context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matching(email, code, purpose, now)) > 0, nil
}

func (r *memoryOtps) CountCreatedSince(_ context.Context, email string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, row := range r.rows {
		if row.Email == email && row.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *memoryOtps) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rows[:0]
	var deleted int64
	for _, row := range r.rows {
		if row.ExpiresAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

func (r *memoryOtps) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Otp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.ID == id {
			otp := row
			return &otp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryOtps) matching(email string, code string, purpose domain.OtpPurpose, now time.Time) []int {
	var idx []int
	for i, row := range r.rows {
		if row.Email == email && row.Code == code && row.Purpose == purpose && row.IsActive(now) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (r *memoryOtps) active(email string, purpose domain.OtpPurpose, now time.Time) []domain.Otp {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []domain.Otp
	for _, row := range r.rows {
		if row.Email == email && row.Purpose == purpose && row.IsActive(now) {
			res = append(res, row)
		}
	}
	return res
}

func testOtpConfig() config.OTPConfig {
	return config.OTPConfig{
		CodeLength:        6,
		Validity:          10 * time.Minute,
		TwoFactorValidity: 5 * time.Minute,
		Cooldown:          time.Minute,
		HourlyLimit:       5,
		StatsWindow:       time.Hour,
		Retention:         24 * time.Hour,
	}
}

type OtpServiceSuite struct {
	suite.Suite

	ctx           context.Context
	clock         *fakeClock
	repo          *memoryOtps
	notifications *recordingNotifications
	metrics       *metrics.Otp
	service       *otpService
}

func TestOtpServiceSuite(t *testing.T) {
	suite.Run(t, new(OtpServiceSuite))
}

func (s *OtpServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.repo = &memoryOtps{}
	s.notifications = &recordingNotifications{}
	s.metrics = metrics.NewOtp(prometheus.NewRegistry())

	s.service = newOtpService(s.repo,
		memorycooldown.New(memorycooldown.WithClock(s.clock.Now)),
		&sequenceGenerator{},
		s.notifications,
		s.metrics,
		testOtpConfig(),
	)
	s.service.now = s.clock.Now
}

func (s *OtpServiceSuite) TestGenerateKeepsSingleValidRecord() {
	for i := 0; i < 4; i++ {
		_, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeEmailVerification, 0)
		s.Require().NoError(err)
		s.clock.Advance(time.Second)
	}

	active := s.repo.active("a@x.com", domain.OtpPurposeEmailVerification, s.clock.Now())
	s.Require().Len(active, 1)
	s.Equal("000004", active[0].Code)

	s.clock.Advance(11 * time.Minute)
	s.Empty(s.repo.active("a@x.com", domain.OtpPurposeEmailVerification, s.clock.Now()))
}

func (s *OtpServiceSuite) TestGenerateDefaults() {
	otp, err := s.service.Generate(s.ctx, "  A@X.com ", domain.OtpPurposeEmailVerification, 0)
	s.Require().NoError(err)
	s.Equal("a@x.com", otp.Email)
	s.Len(otp.Code, 6)
	s.False(otp.Used)
	s.Equal(10*time.Minute, otp.ExpiresAt.Sub(otp.CreatedAt))

	twoFactor, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeTwoFactorAuth, 0)
	s.Require().NoError(err)
	s.Equal(5*time.Minute, twoFactor.ExpiresAt.Sub(twoFactor.CreatedAt))

	custom, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposePasswordReset, 3*time.Minute)
	s.Require().NoError(err)
	s.Equal(3*time.Minute, custom.ExpiresAt.Sub(custom.CreatedAt))

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Issued.WithLabelValues("two_factor_auth")))
}

func (s *OtpServiceSuite) TestGenerateRejectsBadInput() {
	_, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurpose("login"), 0)
	s.ErrorIs(err, ErrInvalidOtpPurpose)

	_, err = s.service.Generate(s.ctx, " ", domain.OtpPurposeEmailVerification, 0)
	s.ErrorIs(err, ErrInvalidEmail)

	_, err = s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeEmailVerification, -time.Minute)
	s.ErrorIs(err, ErrInvalidOtpValidity)
}

func (s *OtpServiceSuite) TestVerifyIsSingleUse() {
	otp, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeEmailVerification, 10*time.Minute)
	s.Require().NoError(err)

	res, err := s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.True(res.Valid)
	s.Equal(OtpVerifiedMessage, res.Message)

	res, err = s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.False(res.Valid)
	s.Equal(OtpInvalidOrExpiredMessage, res.Message)
}

func (s *OtpServiceSuite) TestVerifyIsolatesPurposes() {
	otp, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeEmailVerification, 0)
	s.Require().NoError(err)

	res, err := s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposePasswordReset)
	s.Require().NoError(err)
	s.False(res.Valid)

	res, err = s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.True(res.Valid)
}

func (s *OtpServiceSuite) TestVerifyRejectsExpired() {
	otp, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeEmailVerification, time.Minute)
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)

	ok, err := s.service.IsValid(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.False(ok)

	res, err := s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.False(res.Valid)
}

func (s *OtpServiceSuite) TestRegenerateInvalidatesPreviousCode() {
	first, err := s.service.Generate(s.ctx, "b@x.com", domain.OtpPurposePasswordReset, 10*time.Minute)
	s.Require().NoError(err)
	second, err := s.service.Generate(s.ctx, "b@x.com", domain.OtpPurposePasswordReset, 10*time.Minute)
	s.Require().NoError(err)

	stored, err := s.repo.GetOneByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.True(stored.Used)
	s.NotNil(stored.UsedAt)

	res, err := s.service.Verify(s.ctx, "b@x.com", first.Code, domain.OtpPurposePasswordReset)
	s.Require().NoError(err)
	s.False(res.Valid)

	res, err = s.service.Verify(s.ctx, "b@x.com", second.Code, domain.OtpPurposePasswordReset)
	s.Require().NoError(err)
	s.True(res.Valid)
}

func (s *OtpServiceSuite) TestIsValidDoesNotConsume() {
	otp, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposePasswordReset, 0)
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		ok, err := s.service.IsValid(s.ctx, "a@x.com", otp.Code, domain.OtpPurposePasswordReset)
		s.Require().NoError(err)
		s.True(ok)
	}

	res, err := s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposePasswordReset)
	s.Require().NoError(err)
	s.True(res.Valid)
}

func (s *OtpServiceSuite) TestSendHonorsCooldown() {
	otp, err := s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.Require().Len(s.notifications.sent, 1)
	s.Equal(otp.Code, s.notifications.sent[0].Code)
	s.Equal("Ann", s.notifications.sent[0].UserName)

	s.clock.Advance(30 * time.Second)
	_, err = s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposeEmailVerification)
	s.ErrorIs(err, ErrOtpRateLimited)

	count, err := s.service.GetStats(s.ctx, "a@x.com", time.Hour)
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Len(s.notifications.sent, 1)

	s.clock.Advance(31 * time.Second)
	_, err = s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposeEmailVerification)
	s.NoError(err)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Rejected.WithLabelValues("email_verification", metrics.ReasonCooldown)))
}

func (s *OtpServiceSuite) TestCooldownIsPerPurpose() {
	_, err := s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)

	_, err = s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposePasswordReset)
	s.NoError(err)
}

func (s *OtpServiceSuite) TestSendHourlyLimitIsPerEmail() {
	purposes := []domain.OtpPurpose{
		domain.OtpPurposeEmailVerification,
		domain.OtpPurposePasswordReset,
		domain.OtpPurposeTwoFactorAuth,
	}

	for i := 0; i < 5; i++ {
		_, err := s.service.Send(s.ctx, "a@x.com", "Ann", purposes[i%len(purposes)])
		s.Require().NoError(err, "send %d", i)
		s.clock.Advance(61 * time.Second)
	}

	_, err := s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposePasswordReset)
	s.ErrorIs(err, ErrOtpAbuseThreshold)

	count, err := s.service.GetStats(s.ctx, "a@x.com", time.Hour)
	s.Require().NoError(err)
	s.Equal(5, count)

	_, err = s.service.Send(s.ctx, "other@x.com", "Bob", domain.OtpPurposePasswordReset)
	s.NoError(err)

	s.clock.Advance(time.Hour)
	_, err = s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposePasswordReset)
	s.NoError(err)
}

func (s *OtpServiceSuite) TestSendDeliveryFailureKeepsCode() {
	s.notifications.err = errors.New("smtp down")

	otp, err := s.service.Send(s.ctx, "a@x.com", "Ann", domain.OtpPurposePasswordReset)
	s.ErrorIs(err, ErrOtpDeliveryFailed)
	s.Require().NotNil(otp)

	ok, err := s.service.IsValid(s.ctx, "a@x.com", otp.Code, domain.OtpPurposePasswordReset)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.DeliveryFailures.WithLabelValues("password_reset")))
}

func (s *OtpServiceSuite) TestCleanupDeletesPastRetention() {
	_, err := s.service.Generate(s.ctx, "old@x.com", domain.OtpPurposeEmailVerification, 10*time.Minute)
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	_, err = s.service.Generate(s.ctx, "new@x.com", domain.OtpPurposeEmailVerification, 10*time.Minute)
	s.Require().NoError(err)

	deleted, err := s.service.Cleanup(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)
	s.Len(s.repo.rows, 1)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Reaped))
}

func (s *OtpServiceSuite) TestEndToEndVerification() {
	otp, err := s.service.Generate(s.ctx, "a@x.com", domain.OtpPurposeEmailVerification, 10*time.Minute)
	s.Require().NoError(err)

	res, err := s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.Equal(&domain.OtpVerification{Valid: true, Message: "OTP verified successfully"}, res)

	res, err = s.service.Verify(s.ctx, "a@x.com", otp.Code, domain.OtpPurposeEmailVerification)
	s.Require().NoError(err)
	s.Equal(&domain.OtpVerification{Valid: false, Message: "Invalid or expired OTP"}, res)
}

type failingCooldown struct{}

func (failingCooldown) Allow(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis unavailable")
}

func TestCheckRateLimitFailsOpen(t *testing.T) {
	svc := newOtpService(&memoryOtps{}, failingCooldown{}, &sequenceGenerator{}, &recordingNotifications{},
		metrics.NewOtp(prometheus.NewRegistry()), testOtpConfig())

	assert.True(t, svc.CheckRateLimit(context.Background(), "a@x.com", domain.OtpPurposeEmailVerification))
}

func TestGenerateRetriesDuplicateActiveCode(t *testing.T) {
	repo := new(mock_repository.Otps)
	repo.On("Replace", mock.Anything, mock.Anything).Return(int64(0), domain.ErrDuplicateEntry).Once()
	repo.On("Replace", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

	svc := newOtpService(repo, memorycooldown.New(), &sequenceGenerator{}, &recordingNotifications{},
		metrics.NewOtp(prometheus.NewRegistry()), testOtpConfig())

	otp, err := svc.Generate(context.Background(), "a@x.com", domain.OtpPurposeEmailVerification, 0)
	require.NoError(t, err)
	assert.Equal(t, "000002", otp.Code)
	repo.AssertExpectations(t)
}

func TestVerifySurfacesPersistenceFailure(t *testing.T) {
	repo := new(mock_repository.Otps)
	repo.On("Consume", mock.Anything, "a@x.com", "123456", domain.OtpPurposeEmailVerification, mock.Anything).
		Return(errors.New("connection refused"))

	svc := newOtpService(repo, memorycooldown.New(), &sequenceGenerator{}, &recordingNotifications{},
		metrics.NewOtp(prometheus.NewRegistry()), testOtpConfig())

	res, err := svc.Verify(context.Background(), "a@x.com", "123456", domain.OtpPurposeEmailVerification)
	assert.Error(t, err)
	assert.Nil(t, res)
}
