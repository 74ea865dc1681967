package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore looks up users, verifies passwords, and manages the
// claims and role memberships attached to a user record.
type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, email, password string) (*User, error)
	CheckPassword(ctx context.Context, user *User, password string) bool
	GetUserClaims(ctx context.Context, user *User) ([]Claim, error)
	GetUserRoles(ctx context.Context, user *User) ([]string, error)
	AddUserToRole(ctx context.Context, user *User, roleName string) error
	RemoveUserFromRole(ctx context.Context, user *User, roleName string) error
	ListUsers(ctx context.Context) ([]*User, error)
}

// RoleStore manages role records and their attached claims.
type RoleStore interface {
	CreateRole(ctx context.Context, name string) (*Role, error)
	RoleExists(ctx context.Context, name string) (bool, error)
	FindRoleByName(ctx context.Context, name string) (*Role, error)
	GetRoleClaims(ctx context.Context, role *Role) ([]Claim, error)
	ListRoles(ctx context.Context) ([]*Role, error)
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	Issue(claims []Claim) (string, error)
	Validate(token string) (TokenClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
