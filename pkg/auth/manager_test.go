package auth

import (
	"testing"
	"time"

	"github.com/firstlight/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager(config.JWTConfig{SigningKey: "secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	userID := uuid.New()
	token, ttl, err := m.NewJWT(userID)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestManagerRejectsForeignSignature(t *testing.T) {
	issuer, err := NewManager(config.JWTConfig{SigningKey: "other", AccessTokenTTL: time.Hour})
	require.NoError(t, err)
	m, err := NewManager(config.JWTConfig{SigningKey: "secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	token, _, err := issuer.NewJWT(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestManagerRejectsExpired(t *testing.T) {
	m, err := NewManager(config.JWTConfig{SigningKey: "secret", AccessTokenTTL: -time.Minute})
	require.NoError(t, err)

	token, _, err := m.NewJWT(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewManagerValidatesConfig(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "secret"})
	assert.Error(t, err)
}

func TestManagerRejectsForeignIssuer(t *testing.T) {
	m, err := NewManager(config.JWTConfig{SigningKey: "secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		Issuer:    "someone-else",
		Subject:   uuid.NewString(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
