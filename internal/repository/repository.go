package repository

import (
	"context"
	"time"

	"github.com/firstlight/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users Users
	Otps  Otps
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users: newUserRepository(db),
		Otps:  newOtpRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type Otps interface {
	// Replace invalidates every unused code for (otp.Email, otp.Purpose) and
	// inserts otp in one transaction. It returns the number of invalidated rows.
	Replace(ctx context.Context, otp *domain.Otp) (int64, error)
	// Consume marks the newest matching live code as used. It returns
	// domain.ErrNoRowsAffected when nothing matched.
	Consume(ctx context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) error
	IsValid(ctx context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) (bool, error)
	CountCreatedSince(ctx context.Context, email string, since time.Time) (int, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Otp, error)
}
