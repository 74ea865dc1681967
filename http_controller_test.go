package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auth "github.com/moncef-ajmani/hotel-auth"
)

func newTestApp(t *testing.T, users *MockCredentialStore, roles *MockRoleStore) *fiber.App {
	t.Helper()

	tokens, err := auth.NewTokenService(testSigningKey, nil)
	require.NoError(t, err)

	app := fiber.New()
	auth.RegisterRoutes(app,
		auth.NewAuthController(newTestAuthenticator(users, roles, tokens)),
		auth.NewSetupController(auth.NewRoleManager(users, roles)),
	)

	return app
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func decodeAuthResult(t *testing.T, res *http.Response) auth.AuthResult {
	t.Helper()
	var result auth.AuthResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	return result
}

func TestAuthController_Register(t *testing.T) {
	t.Run("invalid body is a bare 400", func(t *testing.T) {
		app := newTestApp(t, new(MockCredentialStore), new(MockRoleStore))

		res, err := app.Test(jsonRequest("POST", "/api/Authentication/Register", `{"email":"not-an-email"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		body, _ := io.ReadAll(res.Body)
		assert.Empty(t, strings.TrimSpace(string(body)))
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockCredentialStore)
		users.On("FindUserByEmail", mock.Anything, "a@x.com").Return(testUser(), nil)
		app := newTestApp(t, users, new(MockRoleStore))

		res, err := app.Test(jsonRequest("POST", "/api/Authentication/Register", `{"email":"a@x.com","password":"P@ss123!"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		result := decodeAuthResult(t, res)
		assert.False(t, result.Result)
		assert.Equal(t, []string{"Email already exist"}, result.Errors)
	})

	t.Run("successful registration returns a token carrying the client role", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		user := testUser()
		role := &auth.Role{Name: auth.RoleClient}

		users.On("FindUserByEmail", mock.Anything, "a@x.com").Return(nil, auth.ErrUserNotFound)
		users.On("CreateUser", mock.Anything, "a@x.com", "P@ss123!").Return(user, nil)
		users.On("AddUserToRole", mock.Anything, user, auth.RoleClient).Return(nil)
		users.On("GetUserClaims", mock.Anything, user).Return([]auth.Claim{}, nil)
		users.On("GetUserRoles", mock.Anything, user).Return([]string{auth.RoleClient}, nil)
		roles.On("FindRoleByName", mock.Anything, auth.RoleClient).Return(role, nil)
		roles.On("GetRoleClaims", mock.Anything, role).Return([]auth.Claim{}, nil)

		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("POST", "/api/Authentication/Register", `{"email":"a@x.com","password":"P@ss123!"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		result := decodeAuthResult(t, res)
		assert.True(t, result.Result)
		require.NotEmpty(t, result.Token)

		tokens, err := auth.NewTokenService(testSigningKey, nil)
		require.NoError(t, err)
		claims, err := tokens.Validate(result.Token)
		require.NoError(t, err)
		assert.True(t, claims.HasRole(auth.RoleClient))
		assert.Equal(t, "a@x.com", claims.Email())
	})
}

func TestAuthController_Login(t *testing.T) {
	t.Run("invalid body reports Invalid payload", func(t *testing.T) {
		app := newTestApp(t, new(MockCredentialStore), new(MockRoleStore))

		res, err := app.Test(jsonRequest("POST", "/api/Authentication/Login", `{"password":"P@ss123!"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		result := decodeAuthResult(t, res)
		assert.Equal(t, []string{"Invalid payload"}, result.Errors)
	})

	t.Run("unknown user reports Invalid Payload", func(t *testing.T) {
		users := new(MockCredentialStore)
		users.On("FindUserByEmail", mock.Anything, "nobody@x.com").Return(nil, auth.ErrUserNotFound)
		app := newTestApp(t, users, new(MockRoleStore))

		res, err := app.Test(jsonRequest("POST", "/api/Authentication/Login", `{"email":"nobody@x.com","password":"P@ss123!"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		result := decodeAuthResult(t, res)
		assert.Equal(t, []string{"Invalid Payload"}, result.Errors)
	})

	t.Run("wrong password reports Invalid credentials", func(t *testing.T) {
		users := new(MockCredentialStore)
		user := testUser()
		users.On("FindUserByEmail", mock.Anything, "a@x.com").Return(user, nil)
		users.On("CheckPassword", mock.Anything, user, "wrong").Return(false)
		app := newTestApp(t, users, new(MockRoleStore))

		res, err := app.Test(jsonRequest("POST", "/api/Authentication/Login", `{"email":"a@x.com","password":"wrong"}`))
		require.NoError(t, err)

		result := decodeAuthResult(t, res)
		assert.Equal(t, []string{"Invalid credentials"}, result.Errors)
	})
}

func TestSetupController(t *testing.T) {
	t.Run("create role", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		roles.On("RoleExists", mock.Anything, "manager").Return(false, nil)
		roles.On("CreateRole", mock.Anything, "manager").Return(&auth.Role{Name: "manager"}, nil)
		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("POST", "/api/Setup?name=manager", ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "The Role manager has been added successfully", body["result"])
	})

	t.Run("create existing role", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		roles.On("RoleExists", mock.Anything, "manager").Return(true, nil)
		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("POST", "/api/Setup?name=manager", ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "Role already exist", body["error"])
	})

	t.Run("add user to missing role", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		users.On("FindUserByEmail", mock.Anything, "a@x.com").Return(testUser(), nil)
		roles.On("RoleExists", mock.Anything, "ghost").Return(false, nil)
		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("POST", "/api/Setup/AddUserToRole?email=a@x.com&roleName=ghost", ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "Role does not exist", body["error"])
		users.AssertNotCalled(t, "AddUserToRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("add missing user to role", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		users.On("FindUserByEmail", mock.Anything, "nobody@x.com").Return(nil, auth.ErrUserNotFound)
		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("POST", "/api/Setup/AddUserToRole?email=nobody@x.com&roleName=client", ""))
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "User does not exist", body["error"])
	})

	t.Run("get user roles", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		user := testUser()
		users.On("FindUserByEmail", mock.Anything, "a@x.com").Return(user, nil)
		users.On("GetUserRoles", mock.Anything, user).Return([]string{"client"}, nil)
		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("GET", "/api/Setup/GetUserRoles?email=a@x.com", ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		var names []string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&names))
		assert.Equal(t, []string{"client"}, names)
	})

	t.Run("remove user from role", func(t *testing.T) {
		users := new(MockCredentialStore)
		roles := new(MockRoleStore)
		user := testUser()
		users.On("FindUserByEmail", mock.Anything, "a@x.com").Return(user, nil)
		roles.On("RoleExists", mock.Anything, "client").Return(true, nil)
		users.On("RemoveUserFromRole", mock.Anything, user, "client").Return(nil)
		app := newTestApp(t, users, roles)

		res, err := app.Test(jsonRequest("POST", "/api/Setup/RemoveUserFromRole?email=a@x.com&roleName=client", ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "User a@x.com has been removed from role client", body["result"])
	})
}
