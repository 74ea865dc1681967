package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type usersRepository struct {
	db     *bun.DB
	logger Logger
	roles  RoleStore
}

var _ CredentialStore = (*usersRepository)(nil)

// NewUsersRepository returns a bun backed CredentialStore. The role store is
// needed to resolve role names into membership rows.
func NewUsersRepository(db *bun.DB, roles RoleStore) CredentialStore {
	return &usersRepository{
		db:     db,
		logger: defLogger{},
		roles:  roles,
	}
}

func (r *usersRepository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("usr.email = ?", normalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// CreateUser hashes the password and inserts a new user record. The email is
// also the username. The unique index on email is the authoritative guard
// against duplicate registrations, any earlier existence check is advisory.
func (r *usersRepository) CreateUser(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrNoEmptyString
	}

	if err := ValidatePasswordPolicy(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     email,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *usersRepository) CheckPassword(ctx context.Context, user *User, password string) bool {
	return ComparePasswordAndHash(password, user.PasswordHash) == nil
}

func (r *usersRepository) GetUserClaims(ctx context.Context, user *User) ([]Claim, error) {
	var records []UserClaim
	err := r.db.NewSelect().
		Model(&records).
		Where("uclm.user_id = ?", user.ID).
		OrderExpr("uclm.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	claims := make([]Claim, 0, len(records))
	for _, record := range records {
		claims = append(claims, record.Claim())
	}

	return claims, nil
}

func (r *usersRepository) GetUserRoles(ctx context.Context, user *User) ([]string, error) {
	var names []string
	err := r.db.NewSelect().
		ColumnExpr("rol.name").
		TableExpr("roles AS rol").
		Join("JOIN user_roles AS urole ON urole.role_id = rol.id").
		Where("urole.user_id = ?", user.ID).
		OrderExpr("urole.id ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *usersRepository) AddUserToRole(ctx context.Context, user *User, roleName string) error {
	role, err := r.roles.FindRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	assignment := &UserRoleAssignment{
		UserID: user.ID,
		RoleID: role.ID,
	}

	if _, err := r.db.NewInsert().Model(assignment).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyInRole
		}
		return fmt.Errorf("add user to role: %w", err)
	}

	return nil
}

func (r *usersRepository) RemoveUserFromRole(ctx context.Context, user *User, roleName string) error {
	role, err := r.roles.FindRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	res, err := r.db.NewDelete().
		Model((*UserRoleAssignment)(nil)).
		Where("user_id = ? AND role_id = ?", user.ID, role.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove user from role: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotInRole
	}

	return nil
}

func (r *usersRepository) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := r.db.NewSelect().
		Model(&users).
		OrderExpr("usr.email ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
