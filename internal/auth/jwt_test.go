package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"userhub/internal/model"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	user := &model.User{ID: 7, Email: "admin@example.com", Role: model.RoleAdmin}

	token, err := svc.Generate(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(SessionTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Generate(&model.User{ID: 1, Email: "u@example.com", Role: model.RoleUser})
	assert.NoError(t, err)

	_, err = NewTokenService("secret-b").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Expired(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Email:  "u@example.com",
		Role:   string(model.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = NewTokenService("test-secret").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	_, err := NewTokenService("test-secret").Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
