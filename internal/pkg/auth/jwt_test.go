package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/pkg/apperrors"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", TokenIssuer: "campushub.test"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateToken(42, models.RoleOrganizer, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleOrganizer, claims.Role())
	assert.Equal(t, "42", claims.Subject)
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateToken(42, models.RoleStudent, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}

func TestTokenFromOtherSecretOrIssuer(t *testing.T) {
	svc := newTestService()

	other := NewJWTService(JWTConfig{SecretKey: "other", TokenIssuer: "campushub.test"})
	token, err := other.GenerateToken(42, models.RoleStudent, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	foreign := NewJWTService(JWTConfig{SecretKey: "test-secret", TokenIssuer: "elsewhere"})
	token, err = foreign.GenerateToken(42, models.RoleStudent, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestUnknownRoleIsRejected(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateToken(42, models.RoleType("JANITOR"), time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	_, err = svc.ValidateAndExtractClaims("")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	token, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	for _, header := range []string{"", "Bearer ", "Basic dXNlcjpwYXNz", "Bearer abc"} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidFormat, header)
	}
}
