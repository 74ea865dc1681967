package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	auth "github.com/moncef-ajmani/hotel-auth"
)

// MockCredentialStore implements auth.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockCredentialStore) CreateUser(ctx context.Context, email, password string) (*auth.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockCredentialStore) CheckPassword(ctx context.Context, user *auth.User, password string) bool {
	args := m.Called(ctx, user, password)
	return args.Bool(0)
}

func (m *MockCredentialStore) GetUserClaims(ctx context.Context, user *auth.User) ([]auth.Claim, error) {
	args := m.Called(ctx, user)
	claims, _ := args.Get(0).([]auth.Claim)
	return claims, args.Error(1)
}

func (m *MockCredentialStore) GetUserRoles(ctx context.Context, user *auth.User) ([]string, error) {
	args := m.Called(ctx, user)
	roles, _ := args.Get(0).([]string)
	return roles, args.Error(1)
}

func (m *MockCredentialStore) AddUserToRole(ctx context.Context, user *auth.User, roleName string) error {
	args := m.Called(ctx, user, roleName)
	return args.Error(0)
}

func (m *MockCredentialStore) RemoveUserFromRole(ctx context.Context, user *auth.User, roleName string) error {
	args := m.Called(ctx, user, roleName)
	return args.Error(0)
}

func (m *MockCredentialStore) ListUsers(ctx context.Context) ([]*auth.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*auth.User)
	return users, args.Error(1)
}

// MockRoleStore implements auth.RoleStore
type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) CreateRole(ctx context.Context, name string) (*auth.Role, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

func (m *MockRoleStore) RoleExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleStore) FindRoleByName(ctx context.Context, name string) (*auth.Role, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*auth.Role)
	return role, args.Error(1)
}

func (m *MockRoleStore) GetRoleClaims(ctx context.Context, role *auth.Role) ([]auth.Claim, error) {
	args := m.Called(ctx, role)
	claims, _ := args.Get(0).([]auth.Claim)
	return claims, args.Error(1)
}

func (m *MockRoleStore) ListRoles(ctx context.Context) ([]*auth.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]*auth.Role)
	return roles, args.Error(1)
}

// MockTokenService implements auth.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(claims []auth.Claim) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (auth.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(auth.TokenClaims)
	return claims, args.Error(1)
}

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}
