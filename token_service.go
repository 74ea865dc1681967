package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiration is the lifetime of every issued token. Fixed at one
// day, not configurable per call.
const DefaultTokenExpiration = 24 * time.Hour

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	expiration time.Duration
	logger     Logger
	now        func() time.Time
}

type TokenServiceOption func(*TokenServiceImpl)

// WithTokenClock overrides the expiry timestamp source, used in tests
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		ts.now = now
	}
}

// NewTokenService creates a new TokenService instance. An empty signing key
// is a configuration error: the service refuses to come up without one.
func NewTokenService(signingKey []byte, logger Logger, opts ...TokenServiceOption) (*TokenServiceImpl, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	if logger == nil {
		logger = defLogger{}
	}

	ts := &TokenServiceImpl{
		signingKey: signingKey,
		expiration: DefaultTokenExpiration,
		logger:     logger,
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}

	return ts, nil
}

// Issue signs the assembled claim set with HMAC-SHA256 and stamps an expiry
// one day out. Repeated claim types collapse into array values, which is how
// multi valued role claims serialize.
func (ts *TokenServiceImpl) Issue(claims []Claim) (string, error) {
	if len(ts.signingKey) == 0 {
		return "", ErrMissingSigningKey
	}

	payload := jwt.MapClaims{}
	for _, claim := range claims {
		switch existing := payload[claim.Type].(type) {
		case nil:
			payload[claim.Type] = claim.Value
		case string:
			payload[claim.Type] = []string{existing, claim.Value}
		case []string:
			payload[claim.Type] = append(existing, claim.Value)
		}
	}

	payload["exp"] = ts.now().Add(ts.expiration).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claim payload.
// Tokens with a bad signature, a non HMAC algorithm, a passed expiry, or a
// malformed structure are rejected.
func (ts *TokenServiceImpl) Validate(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return TokenClaims(claims), nil
}
