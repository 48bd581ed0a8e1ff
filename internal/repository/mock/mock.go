package mock_repository

import (
	"context"
	"time"

	"github.com/firstlight/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Users struct {
	mock.Mock
}

func (m *Users) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)

	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *Users) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *Users) SetVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Users) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type Otps struct {
	mock.Mock
}

func (m *Otps) Replace(ctx context.Context, otp *domain.Otp) (int64, error) {
	args := m.Called(ctx, otp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Otps) Consume(ctx context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) error {
	args := m.Called(ctx, email, code, purpose, now)
	return args.Error(0)
}

func (m *Otps) IsValid(ctx context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) (bool, error) {
	args := m.Called(ctx, email, code, purpose, now)
	return args.Bool(0), args.Error(1)
}

func (m *Otps) CountCreatedSince(ctx context.Context, email string, since time.Time) (int, error) {
	args := m.Called(ctx, email, since)
	return args.Int(0), args.Error(1)
}

func (m *Otps) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Otps) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Otp, error) {
	args := m.Called(ctx, id)

	otp, _ := args.Get(0).(*domain.Otp)
	return otp, args.Error(1)
}
