package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/internal/repository"
	"github.com/firstlight/backend/pkg/auth"
	"github.com/firstlight/backend/pkg/hash"
	"github.com/firstlight/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	userRepository repository.Users
	otps           Otps
	hasher         hash.PasswordHasher
	tokenManager   auth.TokenManager
}

func newUserService(userRepository repository.Users,
	otps Otps,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
) *userService {
	return &userService{
		userRepository: userRepository,
		otps:           otps,
		hasher:         hasher,
		tokenManager:   tokenManager,
	}
}

func (s *userService) createSession(userID uuid.UUID) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &res, nil
}

// Register stores a new unverified account and mails it a verification code.
// A code that could not be issued or delivered does not undo the account.
func (s *userService) Register(ctx context.Context, input UserRegisterInput) (*domain.User, *domain.Otp, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, nil, ErrInvalidEmail
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("generate user id failed: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.UserRoleTenant
	}

	user := &domain.User{
		ID:       userID,
		Name:     input.Name,
		Email:    email,
		Password: passwordHash,
		Phone: sql.NullString{
			String: input.Phone,
			Valid:  input.Phone != "",
		},
		Role: role,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, nil, ErrUserAlreadyExist
		}
		return nil, nil, fmt.Errorf("create user failed: %w", err)
	}

	otp, err := s.otps.Send(ctx, user.Email, user.Name, domain.OtpPurposeEmailVerification)
	if err != nil {
		logger.Warn("registration verification otp not sent",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return user, otp, nil
}

// Login checks credentials. Unverified accounts get a fresh verification code
// and ErrEmailNotVerified instead of a token.
func (s *userService) Login(ctx context.Context, email string, password string) (*domain.User, *Tokens, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, hash.ErrMismatchedPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("compare password failed: %w", err)
	}

	if !user.IsVerified {
		if _, err := s.otps.Send(ctx, user.Email, user.Name, domain.OtpPurposeEmailVerification); err != nil {
			logger.Warn("login verification otp not sent",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
		return user, nil, ErrEmailNotVerified
	}

	tokens, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("create session failed: %w", err)
	}

	return user, tokens, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepository.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}
	return user, nil
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}
	return user, nil
}

func (s *userService) SendVerificationOtp(ctx context.Context, email string) (*domain.Otp, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsVerified {
		return nil, ErrUserAlreadyVerified
	}

	return s.otps.Send(ctx, user.Email, user.Name, domain.OtpPurposeEmailVerification)
}

func (s *userService) VerifyEmail(ctx context.Context, email string, code string) error {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.verify(ctx, user.Email, code, domain.OtpPurposeEmailVerification); err != nil {
		return err
	}

	if err := s.userRepository.SetVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("set user verified failed: %w", err)
	}

	return nil
}

// SendPasswordResetOtp returns a nil record without error for unknown emails
// so callers cannot probe which addresses are registered.
func (s *userService) SendPasswordResetOtp(ctx context.Context, email string) (*domain.Otp, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			logger.Info("password reset requested for unknown email", zap.String("email", normalizeEmail(email)))
			return nil, nil
		}
		return nil, err
	}

	return s.otps.Send(ctx, user.Email, user.Name, domain.OtpPurposePasswordReset)
}

// VerifyPasswordResetOtp reports whether code would be accepted by
// ResetPassword without consuming it.
func (s *userService) VerifyPasswordResetOtp(ctx context.Context, email string, code string) error {
	ok, err := s.otps.IsValid(ctx, email, code, domain.OtpPurposePasswordReset)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOtpInvalidOrExpired
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrOtpInvalidOrExpired
		}
		return err
	}

	if err := s.verify(ctx, user.Email, code, domain.OtpPurposePasswordReset); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}

	logger.Info("password reset", zap.String("user_id", user.ID.String()))

	return nil
}

// ResendOtp mints a new code for the unauthenticated flows. Two-factor codes
// are only issued to authenticated users.
func (s *userService) ResendOtp(ctx context.Context, email string, purpose domain.OtpPurpose) (*domain.Otp, error) {
	switch purpose {
	case domain.OtpPurposeEmailVerification:
		return s.SendVerificationOtp(ctx, email)
	case domain.OtpPurposePasswordReset:
		return s.SendPasswordResetOtp(ctx, email)
	case domain.OtpPurposeTwoFactorAuth:
		return nil, ErrOtpPurposeNotAllowed
	default:
		return nil, ErrInvalidOtpPurpose
	}
}

func (s *userService) SendTwoFactorOtp(ctx context.Context, userID uuid.UUID) (*domain.Otp, error) {
	user, err := s.GetOneByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.otps.Send(ctx, user.Email, user.Name, domain.OtpPurposeTwoFactorAuth)
}

func (s *userService) VerifyTwoFactorOtp(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.GetOneByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.verify(ctx, user.Email, code, domain.OtpPurposeTwoFactorAuth)
}

func (s *userService) verify(ctx context.Context, email string, code string, purpose domain.OtpPurpose) error {
	res, err := s.otps.Verify(ctx, email, code, purpose)
	if err != nil {
		return err
	}
	if !res.Valid {
		return ErrOtpInvalidOrExpired
	}
	return nil
}
