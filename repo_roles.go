package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type rolesRepository struct {
	db     *bun.DB
	logger Logger
}

var _ RoleStore = (*rolesRepository)(nil)

// NewRolesRepository returns a bun backed RoleStore
func NewRolesRepository(db *bun.DB) RoleStore {
	return &rolesRepository{
		db:     db,
		logger: defLogger{},
	}
}

// CreateRole inserts a new role record. The unique index on the role name is
// the authoritative guard against duplicates.
func (r *rolesRepository) CreateRole(ctx context.Context, name string) (*Role, error) {
	if name == "" {
		return nil, ErrNoEmptyString
	}

	role := &Role{
		ID:   uuid.New(),
		Name: name,
	}

	if _, err := r.db.NewInsert().Model(role).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRoleExists
		}
		return nil, fmt.Errorf("create role: %w", err)
	}

	return role, nil
}

func (r *rolesRepository) RoleExists(ctx context.Context, name string) (bool, error) {
	return r.db.NewSelect().
		Model((*Role)(nil)).
		Where("rol.name = ?", name).
		Exists(ctx)
}

func (r *rolesRepository) FindRoleByName(ctx context.Context, name string) (*Role, error) {
	role := &Role{}
	err := r.db.NewSelect().
		Model(role).
		Where("rol.name = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	return role, nil
}

func (r *rolesRepository) GetRoleClaims(ctx context.Context, role *Role) ([]Claim, error) {
	var records []RoleClaim
	err := r.db.NewSelect().
		Model(&records).
		Where("rclm.role_id = ?", role.ID).
		OrderExpr("rclm.id ASC").
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

func (r *rolesRepository) ListRoles(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	err := r.db.NewSelect().
		Model(&roles).
		OrderExpr("rol.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return roles, nil
}
