package service

import (
	"context"
	"io/fs"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/internal/metrics"
	"github.com/firstlight/backend/internal/repository"
	"github.com/firstlight/backend/pkg/auth"
	"github.com/firstlight/backend/pkg/cooldown"
	"github.com/firstlight/backend/pkg/email"
	"github.com/firstlight/backend/pkg/hash"
	"github.com/firstlight/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Users         Users
	Otps          Otps
	Notifications Notifications
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	EmailSender  email.Sender
	Cooldown     cooldown.Store
	Metrics      *metrics.Otp
	Repos        *repository.Repositories
	Templates    fs.FS
}

func NewServices(deps Deps) *Services {
	notifications := newNotificationService(deps.EmailSender, deps.Templates, deps.Config.Email)

	otps := newOtpService(deps.Repos.Otps,
		deps.Cooldown,
		deps.OtpGenerator,
		notifications,
		deps.Metrics,
		deps.Config.OTP,
	)

	return &Services{
		Users: newUserService(deps.Repos.Users,
			otps,
			deps.Hasher,
			deps.TokenManager,
		),
		Otps:          otps,
		Notifications: notifications,
	}
}

type Users interface {
	Register(ctx context.Context, input UserRegisterInput) (*domain.User, *domain.Otp, error)
	Login(ctx context.Context, email string, password string) (*domain.User, *Tokens, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SendVerificationOtp(ctx context.Context, email string) (*domain.Otp, error)
	VerifyEmail(ctx context.Context, email string, code string) error
	SendPasswordResetOtp(ctx context.Context, email string) (*domain.Otp, error)
	VerifyPasswordResetOtp(ctx context.Context, email string, code string) error
	ResetPassword(ctx context.Context, email string, code string, newPassword string) error
	ResendOtp(ctx context.Context, email string, purpose domain.OtpPurpose) (*domain.Otp, error)
	SendTwoFactorOtp(ctx context.Context, userID uuid.UUID) (*domain.Otp, error)
	VerifyTwoFactorOtp(ctx context.Context, userID uuid.UUID, code string) error
}

// Otps manages the one-time code lifecycle.
type Otps interface {
	Generate(ctx context.Context, email string, purpose domain.OtpPurpose, validity time.Duration) (*domain.Otp, error)
	Verify(ctx context.Context, email string, code string, purpose domain.OtpPurpose) (*domain.OtpVerification, error)
	IsValid(ctx context.Context, email string, code string, purpose domain.OtpPurpose) (bool, error)
	CheckRateLimit(ctx context.Context, email string, purpose domain.OtpPurpose) bool
	GetStats(ctx context.Context, email string, window time.Duration) (int, error)
	Send(ctx context.Context, email string, userName string, purpose domain.OtpPurpose) (*domain.Otp, error)
	Cleanup(ctx context.Context) (int64, error)
}

type Notifications interface {
	SendOtp(ctx context.Context, input OtpEmailInput) (*email.Receipt, error)
}

type OtpEmailInput struct {
	Email     string
	UserName  string
	Code      string
	Purpose   domain.OtpPurpose
	ExpiresIn time.Duration
}

type UserRegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.UserRole
}

type Tokens struct {
	AccessToken string
	AccessTTL   time.Duration
}
