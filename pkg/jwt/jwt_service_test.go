package jwt

import (
	"foodgram/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	service := NewJWTService("test-secret")

	token := service.GenerateTokenUser("6f1c1d9e-1111-4c1e-9e6f-6c1d9e6f1c1d", domain.RoleAdmin)
	require.NotEmpty(t, token)

	id, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "6f1c1d9e-1111-4c1e-9e6f-6c1d9e6f1c1d", id)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestGetUserIDByToken_Invalid(t *testing.T) {
	service := NewJWTService("test-secret")

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := service.GetUserIDByToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token := NewJWTService("other-secret").GenerateTokenUser("id", domain.RoleUser)
		_, _, err := service.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := jwtUserClaim{
			"id",
			domain.RoleUser,
			jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, _, err = service.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})
}
