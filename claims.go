package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Claim types carried in every issued token. Role and user attached claims
// use arbitrary types on top of these.
const (
	ClaimTypeID       = "id"
	ClaimTypeSubject  = "sub"
	ClaimTypeEmail    = "email"
	ClaimTypeTokenID  = "jti"
	ClaimTypeIssuedAt = "iat"
	ClaimTypeRole     = "role"
)

// Claim is a loosely typed (type, value) pair. Role attached claims are open
// ended, so we keep the bag string keyed instead of modeling every kind.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ClaimsAssembler produces the full ordered claim set for a user: identity
// claims first, then the user's direct claims, then per role membership the
// role claim followed by the role's attached claims.
type ClaimsAssembler struct {
	users  CredentialStore
	roles  RoleStore
	logger Logger
	now    func() time.Time
}

type ClaimsAssemblerOption func(*ClaimsAssembler)

func WithAssemblerLogger(logger Logger) ClaimsAssemblerOption {
	return func(a *ClaimsAssembler) {
		a.logger = logger
	}
}

// WithAssemblerClock overrides the issue timestamp source, used in tests
func WithAssemblerClock(now func() time.Time) ClaimsAssemblerOption {
	return func(a *ClaimsAssembler) {
		a.now = now
	}
}

// NewClaimsAssembler returns an assembler reading from the given stores
func NewClaimsAssembler(users CredentialStore, roles RoleStore, opts ...ClaimsAssemblerOption) *ClaimsAssembler {
	a := &ClaimsAssembler{
		users:  users,
		roles:  roles,
		logger: defLogger{},
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// Assemble builds the claim set for user. Each call generates a fresh token
// id and issue timestamp, so two assemblies for the same user never match.
// Role names that do not resolve in the role store are skipped.
func (a *ClaimsAssembler) Assemble(ctx context.Context, user *User) ([]Claim, error) {
	claims := []Claim{
		{Type: ClaimTypeID, Value: user.ID.String()},
		{Type: ClaimTypeSubject, Value: user.Email},
		{Type: ClaimTypeEmail, Value: user.Email},
		{Type: ClaimTypeTokenID, Value: uuid.New().String()},
		{Type: ClaimTypeIssuedAt, Value: a.now().UTC().Format(time.RFC3339)},
	}

	userClaims, err := a.users.GetUserClaims(ctx, user)
	if err != nil {
		a.logger.Error("Assemble get user claims: %s", err)
		return nil, err
	}
	claims = append(claims, userClaims...)

	roleNames, err := a.users.GetUserRoles(ctx, user)
	if err != nil {
		a.logger.Error("Assemble get user roles: %s", err)
		return nil, err
	}

	for _, roleName := range roleNames {
		role, err := a.roles.FindRoleByName(ctx, roleName)
		if err != nil {
			if errors.Is(err, ErrRoleNotFound) {
				// stale membership, leave it out of the token
				a.logger.Debug("Assemble skipping unknown role %s", roleName)
				continue
			}
			a.logger.Error("Assemble find role %s: %s", roleName, err)
			return nil, err
		}

		claims = append(claims, Claim{Type: ClaimTypeRole, Value: roleName})

		roleClaims, err := a.roles.GetRoleClaims(ctx, role)
		if err != nil {
			a.logger.Error("Assemble get role claims %s: %s", roleName, err)
			return nil, err
		}
		claims = append(claims, roleClaims...)
	}

	return claims, nil
}
