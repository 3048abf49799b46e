package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boomerhub/boomerhub/internal/shared/authorization"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "boomerhub", 15)
	require.NoError(t, err)

	token, err := svc.Generate("user-123", authorization.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID())
	assert.True(t, claims.Role.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc, err := NewJWTService("test-secret", "boomerhub", 15)
	require.NoError(t, err)
	other, err := NewJWTService("other-secret", "boomerhub", 15)
	require.NoError(t, err)
	wrongIssuer, err := NewJWTService("test-secret", "someone-else", 15)
	require.NoError(t, err)

	forged, err := other.Generate("user-1", authorization.RoleUser)
	require.NoError(t, err)
	_, err = svc.Verify(forged)
	assert.Error(t, err, "wrong secret")

	foreign, err := wrongIssuer.Generate("user-1", authorization.RoleUser)
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.Error(t, err, "wrong issuer")

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc, err := NewJWTService("test-secret", "", 15)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	claims := &Claims{
		Role:      authorization.RoleUser,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", "boomerhub", 15)
	assert.Error(t, err)
}
