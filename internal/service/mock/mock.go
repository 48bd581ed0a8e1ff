package mock_service

import (
	"context"

	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Users struct {
	mock.Mock
}

func (m *Users) Register(ctx context.Context, input service.UserRegisterInput) (*domain.User, *domain.Otp, error) {
	args := m.Called(ctx, input)

	user, _ := args.Get(0).(*domain.User)
	otp, _ := args.Get(1).(*domain.Otp)
	return user, otp, args.Error(2)
}

func (m *Users) Login(ctx context.Context, email string, password string) (*domain.User, *service.Tokens, error) {
	args := m.Called(ctx, email, password)

	user, _ := args.Get(0).(*domain.User)
	tokens, _ := args.Get(1).(*service.Tokens)
	return user, tokens, args.Error(2)
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

func (m *Users) SendVerificationOtp(ctx context.Context, email string) (*domain.Otp, error) {
	return m.otpCall(m.Called(ctx, email))
}

func (m *Users) VerifyEmail(ctx context.Context, email string, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *Users) SendPasswordResetOtp(ctx context.Context, email string) (*domain.Otp, error) {
	return m.otpCall(m.Called(ctx, email))
}

func (m *Users) VerifyPasswordResetOtp(ctx context.Context, email string, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *Users) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

func (m *Users) ResendOtp(ctx context.Context, email string, purpose domain.OtpPurpose) (*domain.Otp, error) {
	return m.otpCall(m.Called(ctx, email, purpose))
}

func (m *Users) SendTwoFactorOtp(ctx context.Context, userID uuid.UUID) (*domain.Otp, error) {
	return m.otpCall(m.Called(ctx, userID))
}

func (m *Users) VerifyTwoFactorOtp(ctx context.Context, userID uuid.UUID, code string) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *Users) otpCall(args mock.Arguments) (*domain.Otp, error) {
	otp, _ := args.Get(0).(*domain.Otp)
	return otp, args.Error(1)
}
