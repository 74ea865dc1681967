package auth

import (
	"errors"
	"strings"
)

// ErrUserNotFound is the error we return for non found users
var ErrUserNotFound = errors.New("user not found")

// ErrRoleNotFound is the error we return for non found roles
var ErrRoleNotFound = errors.New("role not found")

// ErrEmailTaken means a user with the given email is already registered
var ErrEmailTaken = errors.New("email already registered")

// ErrRoleExists means a role with the given name is already registered
var ErrRoleExists = errors.New("role already exists")

// ErrAlreadyInRole means the membership being added already exists
var ErrAlreadyInRole = errors.New("user already in role")

// ErrNotInRole means the membership being removed does not exist
var ErrNotInRole = errors.New("user not in role")

// ErrMissingSigningKey means the token signing secret was not configured.
// Tokens cannot be issued without it, so this is fatal at startup.
var ErrMissingSigningKey = errors.New("missing token signing key")

// ErrTokenExpired is returned for structurally valid tokens past their expiry
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed is returned for tokens that fail to parse or verify
var ErrTokenMalformed = errors.New("token is malformed")

// ErrWeakPassword means the password does not satisfy the account policy
var ErrWeakPassword = errors.New("password does not meet policy requirements")

// ErrNoEmptyString rejects empty required inputs
var ErrNoEmptyString = errors.New("should not be an empty string")

// ErrMismatchedHashAndPassword is the bcrypt mismatch error surfaced
// without leaking the underlying implementation
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
