package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	auth "github.com/moncef-ajmani/hotel-auth"
)

func TestTokenClaims_Accessors(t *testing.T) {
	claims := auth.TokenClaims{
		"id":    "user-1",
		"sub":   "a@x.com",
		"email": "a@x.com",
		"jti":   "token-1",
		"iat":   "2024-03-01T12:00:00Z",
		"exp":   float64(1709380800),
	}

	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "a@x.com", claims.Subject())
	assert.Equal(t, "a@x.com", claims.Email())
	assert.Equal(t, "token-1", claims.TokenID())
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), claims.IssuedAt())
	assert.Equal(t, int64(1709380800), claims.Expires().Unix())
}

func TestTokenClaims_Roles(t *testing.T) {
	t.Run("single role serializes as a string", func(t *testing.T) {
		claims := auth.TokenClaims{"role": "client"}
		assert.Equal(t, []string{"client"}, claims.Roles())
		assert.True(t, claims.HasRole("client"))
	})

	t.Run("multiple roles decode as an array", func(t *testing.T) {
		claims := auth.TokenClaims{"role": []any{"client", "manager"}}
		assert.Equal(t, []string{"client", "manager"}, claims.Roles())
		assert.True(t, claims.HasRole("manager"))
		assert.False(t, claims.HasRole("admin"))
	})

	t.Run("no role claim", func(t *testing.T) {
		claims := auth.TokenClaims{}
		assert.Empty(t, claims.Roles())
		assert.False(t, claims.HasRole("client"))
	})
}

func TestTokenClaims_ZeroValues(t *testing.T) {
	claims := auth.TokenClaims{}

	assert.Empty(t, claims.UserID())
	assert.True(t, claims.IssuedAt().IsZero())
	assert.True(t, claims.Expires().IsZero())
}
