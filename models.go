package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RoleClient is the role every newly registered user is assigned
const RoleClient = "client"

// User is the user model. The password hash never leaves the store layer.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Role is a named group carrying a set of attached claims
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// UserRoleAssignment is the membership join between users and roles. The
// autoincrement id preserves assignment order for deterministic claim sets.
type UserRoleAssignment struct {
	bun.BaseModel `bun:"table:user_roles,alias:urole"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid,unique:user_role" json:"user_id,omitempty"`
	RoleID        uuid.UUID `bun:"role_id,notnull,type:uuid,unique:user_role" json:"role_id,omitempty"`
}

// UserClaim is a claim attached directly to a user
type UserClaim struct {
	bun.BaseModel `bun:"table:user_claims,alias:uclm"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	ClaimType     string    `bun:"claim_type,notnull" json:"claim_type,omitempty"`
	ClaimValue    string    `bun:"claim_value,notnull" json:"claim_value,omitempty"`
}

// RoleClaim is a claim attached to a role, inherited by its members' tokens
type RoleClaim struct {
	bun.BaseModel `bun:"table:role_claims,alias:rclm"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	RoleID        uuid.UUID `bun:"role_id,notnull,type:uuid" json:"role_id,omitempty"`
	ClaimType     string    `bun:"claim_type,notnull" json:"claim_type,omitempty"`
	ClaimValue    string    `bun:"claim_value,notnull" json:"claim_value,omitempty"`
}

// Claim returns the claim as a (type, value) pair
func (c UserClaim) Claim() Claim {
	return Claim{Type: c.ClaimType, Value: c.ClaimValue}
}

// Claim returns the claim as a (type, value) pair
func (c RoleClaim) Claim() Claim {
	return Claim{Type: c.ClaimType, Value: c.ClaimValue}
}
