package otp

import (
	"errors"

	"github.com/xlzd/gotp"
)

const secretLength = 32

// Generator mints numeric one-time codes.
type Generator interface {
	RandomSecret(length int) string
	Code(digits int) (string, error)
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

func (g *GOTPGenerator) RandomSecret(length int) string {
	return gotp.RandomSecret(length)
}

// Code returns a zero-padded numeric code of the given width. Every call draws
// a fresh random HOTP secret, so consecutive codes are independent.
func (g *GOTPGenerator) Code(digits int) (string, error) {
	if digits < 4 || digits > 10 {
		return "", errors.New("otp digits must be between 4 and 10")
	}

	hotp := gotp.NewHOTP(g.RandomSecret(secretLength), digits, nil)

	return hotp.At(0), nil
}
