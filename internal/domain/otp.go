package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OtpPurpose string

const (
	OtpPurposeEmailVerification OtpPurpose = "email_verification"
	OtpPurposePasswordReset     OtpPurpose = "password_reset"
	OtpPurposeTwoFactorAuth     OtpPurpose = "two_factor_auth"
)

var OtpPurposes = []OtpPurpose{
	OtpPurposeEmailVerification,
	OtpPurposePasswordReset,
	OtpPurposeTwoFactorAuth,
}

func (p OtpPurpose) Valid() bool {
	switch p {
	case OtpPurposeEmailVerification, OtpPurposePasswordReset, OtpPurposeTwoFactorAuth:
		return true
	}
	return false
}

func (p OtpPurpose) String() string {
	return string(p)
}

func ParseOtpPurpose(s string) (OtpPurpose, error) {
	p := OtpPurpose(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOtpPurpose, s)
	}
	return p, nil
}

// Otp is a single issued one-time passcode bound to an (email, purpose) pair.
type Otp struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Code      string     `db:"code" json:"-"`
	Purpose   OtpPurpose `db:"purpose" json:"purpose"`
	Used      bool       `db:"used" json:"used"`
	UsedAt    *time.Time `db:"used_at" json:"used_at,omitempty"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// IsActive reports whether the record can still satisfy a verification at now.
func (o *Otp) IsActive(now time.Time) bool {
	return !o.Used && o.ExpiresAt.After(now)
}

type OtpVerification struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
