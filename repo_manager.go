package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() CredentialStore
	Roles() RoleStore
	Validate() error
	MustValidate()
	InitSchema(ctx context.Context) error
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db    *bun.DB
	users CredentialStore
	roles RoleStore
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	roles := NewRolesRepository(db)
	return &mngr{
		db:    db,
		roles: roles,
		users: NewUsersRepository(db, roles),
	}
}

func (m mngr) Users() CredentialStore {
	return m.users
}

func (m mngr) Roles() RoleStore {
	return m.roles
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.roles == nil {
		return errors.New("repository roles should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

// InitSchema creates the identity tables if they are missing
func (m mngr) InitSchema(ctx context.Context) error {
	models := []any{
		(*User)(nil),
		(*Role)(nil),
		(*UserRoleAssignment)(nil),
		(*UserClaim)(nil),
		(*RoleClaim)(nil),
	}

	for _, model := range models {
		if _, err := m.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}
