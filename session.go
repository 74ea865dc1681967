package auth

import "time"

// TokenClaims is the decoded payload of a validated token. Values are kept
// loosely typed since role and user attached claims are open ended; accessors
// cover the identity claims every token carries.
type TokenClaims map[string]any

func (c TokenClaims) stringClaim(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// UserID returns the identifier claim
func (c TokenClaims) UserID() string {
	return c.stringClaim(ClaimTypeID)
}

// Subject returns the subject claim
func (c TokenClaims) Subject() string {
	return c.stringClaim(ClaimTypeSubject)
}

// Email returns the email claim
func (c TokenClaims) Email() string {
	return c.stringClaim(ClaimTypeEmail)
}

// TokenID returns the unique per issuance token id
func (c TokenClaims) TokenID() string {
	return c.stringClaim(ClaimTypeTokenID)
}

// IssuedAt returns the issue timestamp claim, zero if absent or unparsable
func (c TokenClaims) IssuedAt() time.Time {
	t, err := time.Parse(time.RFC3339, c.stringClaim(ClaimTypeIssuedAt))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Expires returns the expiry instant, zero if absent
func (c TokenClaims) Expires() time.Time {
	switch v := c["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	}
	return time.Time{}
}

// Roles returns every role membership claim. A single membership serializes
// as a plain string, multiple as an array, so both shapes are handled.
func (c TokenClaims) Roles() []string {
	switch v := c[ClaimTypeRole].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			if role, ok := item.(string); ok {
				roles = append(roles, role)
			}
		}
		return roles
	}
	return nil
}

// HasRole checks if the token carries a role membership claim for role
func (c TokenClaims) HasRole(role string) bool {
	for _, r := range c.Roles() {
		if r == role {
			return true
		}
	}
	return false
}
