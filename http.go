package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moncef-ajmani/hotel-auth/middleware/jwtware"
)

// validatorAdapter fits TokenService into the middleware's TokenValidator
type validatorAdapter struct {
	tokens TokenService
}

func (v validatorAdapter) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := v.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute returns middleware that admits only requests carrying a
// valid bearer token with the required role membership claim.
func ProtectedRoute(tokens TokenService, requiredRole string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		TokenValidator: validatorAdapter{tokens: tokens},
		RequiredRole:   requiredRole,
	})
}
