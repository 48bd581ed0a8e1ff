package service

import (
	"errors"

	"github.com/firstlight/backend/internal/domain"
)

var (
	ErrUserAlreadyExist     = errors.New("user already exist")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyVerified  = errors.New("user already verified")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidOtpPurpose    = domain.ErrInvalidOtpPurpose
	ErrInvalidOtpValidity   = errors.New("otp validity must be positive")
	ErrOtpPurposeNotAllowed = errors.New("otp purpose not allowed here")
	ErrOtpRateLimited       = errors.New("otp cooldown has not elapsed")
	ErrOtpAbuseThreshold    = errors.New("otp hourly limit reached")
	ErrOtpInvalidOrExpired  = errors.New("invalid or expired otp")
	ErrOtpDeliveryFailed    = errors.New("otp delivery failed")
)

const (
	OtpInvalidOrExpiredMessage = "Invalid or expired OTP"
	OtpVerifiedMessage         = "OTP verified successfully"
)
