package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otpRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Otp     string `json:"otp" validate:"required,otpcode"`
	Type    string `json:"type" validate:"required,otppurpose"`
	Phone   string `json:"phone" validate:"omitempty,phonenumber"`
	Ignored string `json:"-"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	ok := otpRequest{Email: "a@x.com", Otp: "012345", Type: "password_reset", Phone: "+15551234567"}
	assert.NoError(t, v.Struct(ok))

	bad := otpRequest{Email: "a@x.com", Otp: "12ab56", Type: "login", Phone: "call me"}
	err := v.Struct(bad)

	var verr validator.ValidationErrors
	require.True(t, errors.As(err, &verr))

	fields := make(map[string]string, len(verr))
	for _, fe := range verr {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{
		"otp":   "otpcode",
		"type":  "otppurpose",
		"phone": "phonenumber",
	}, fields)
}
