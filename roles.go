package auth

import (
	"context"
	"errors"
)

// RoleManager orchestrates the role and credential stores for the
// administrative endpoints. No token logic lives here.
type RoleManager struct {
	users  CredentialStore
	roles  RoleStore
	logger Logger
}

// NewRoleManager returns a new RoleManager
func NewRoleManager(users CredentialStore, roles RoleStore) *RoleManager {
	return &RoleManager{
		users:  users,
		roles:  roles,
		logger: defLogger{},
	}
}

func (m *RoleManager) WithLogger(logger Logger) *RoleManager {
	m.logger = logger
	return m
}

// CreateRole creates a new role, failing with ErrRoleExists if a role with
// that name is already registered.
func (m *RoleManager) CreateRole(ctx context.Context, name string) error {
	exists, err := m.roles.RoleExists(ctx, name)
	if err != nil {
		m.logger.Error("CreateRole exists check error: %s", err)
		return err
	}

	if exists {
		return ErrRoleExists
	}

	if _, err := m.roles.CreateRole(ctx, name); err != nil {
		m.logger.Error("The Role %s has not been added successfully: %s", name, err)
		return err
	}

	m.logger.Info("The Role %s has been added successfully", name)
	return nil
}

// AddUserToRole assigns the user with the given email to roleName. Both the
// user and the role must already exist.
func (m *RoleManager) AddUserToRole(ctx context.Context, email, roleName string) error {
	user, err := m.requireUserAndRole(ctx, email, roleName)
	if err != nil {
		return err
	}

	if err := m.users.AddUserToRole(ctx, user, roleName); err != nil {
		m.logger.Error("The user was not able to be added to the role: %s", err)
		return err
	}

	return nil
}

// RemoveUserFromRole removes the membership of the user with the given email
// from roleName. Both the user and the role must already exist.
func (m *RoleManager) RemoveUserFromRole(ctx context.Context, email, roleName string) error {
	user, err := m.requireUserAndRole(ctx, email, roleName)
	if err != nil {
		return err
	}

	if err := m.users.RemoveUserFromRole(ctx, user, roleName); err != nil {
		m.logger.Error("Unable to remove user %s from role %s: %s", email, roleName, err)
		return err
	}

	return nil
}

// UserRoles returns the role names the user with the given email belongs to
func (m *RoleManager) UserRoles(ctx context.Context, email string) ([]string, error) {
	user, err := m.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			m.logger.Info("The user with the %s does not exist", email)
		}
		return nil, err
	}

	return m.users.GetUserRoles(ctx, user)
}

// Roles lists every registered role
func (m *RoleManager) Roles(ctx context.Context) ([]*Role, error) {
	return m.roles.ListRoles(ctx)
}

// Users lists every registered user
func (m *RoleManager) Users(ctx context.Context) ([]*User, error) {
	return m.users.ListUsers(ctx)
}

func (m *RoleManager) requireUserAndRole(ctx context.Context, email, roleName string) (*User, error) {
	user, err := m.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			m.logger.Info("The user with the %s does not exist", email)
		}
		return nil, err
	}

	exists, err := m.roles.RoleExists(ctx, roleName)
	if err != nil {
		return nil, err
	}

	if !exists {
		m.logger.Info("The Role %s does not exist", roleName)
		return nil, ErrRoleNotFound
	}

	return user, nil
}
