package auth

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// CredentialsRequest is the request body of Register and Login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CredentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthController exposes the registration and login endpoints
type AuthController struct {
	Auth   *Authenticator
	Logger Logger
}

func NewAuthController(auth *Authenticator) *AuthController {
	return &AuthController{
		Auth:   auth,
		Logger: defLogger{},
	}
}

// Register handles POST /api/Authentication/Register. A malformed body is a
// bare 400 with no envelope.
func (a *AuthController) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if err := req.Validate(); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	result := a.Auth.Register(c.Context(), req.Email, req.Password)
	return sendAuthResult(c, result)
}

// Login handles POST /api/Authentication/Login
func (a *AuthController) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return sendAuthResult(c, authFailure("Invalid payload"))
	}

	if err := req.Validate(); err != nil {
		return sendAuthResult(c, authFailure("Invalid payload"))
	}

	result := a.Auth.Login(c.Context(), req.Email, req.Password)
	return sendAuthResult(c, result)
}

func sendAuthResult(c *fiber.Ctx, result AuthResult) error {
	status := fiber.StatusOK
	if !result.Result {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(result)
}

// SetupController exposes the administrative role management endpoints
type SetupController struct {
	Manager *RoleManager
	Logger  Logger
}

func NewSetupController(manager *RoleManager) *SetupController {
	return &SetupController{
		Manager: manager,
		Logger:  defLogger{},
	}
}

// GetAllRoles handles GET /api/Setup
func (s *SetupController) GetAllRoles(c *fiber.Ctx) error {
	roles, err := s.Manager.Roles(c.Context())
	if err != nil {
		s.Logger.Error("GetAllRoles error: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}
	return c.JSON(roles)
}

// CreateRole handles POST /api/Setup?name=
func (s *SetupController) CreateRole(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Role name is required"})
	}

	if err := s.Manager.CreateRole(c.Context(), name); err != nil {
		if errors.Is(err, ErrRoleExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Role already exist"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("The Role %s has not been added successfully", name),
		})
	}

	return c.JSON(fiber.Map{
		"result": fmt.Sprintf("The Role %s has been added successfully", name),
	})
}

// GetAllUsers handles GET /api/Setup/GetAllUsers
func (s *SetupController) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.Manager.Users(c.Context())
	if err != nil {
		s.Logger.Error("GetAllUsers error: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}
	return c.JSON(users)
}

// AddUserToRole handles POST /api/Setup/AddUserToRole?email=&roleName=
func (s *SetupController) AddUserToRole(c *fiber.Ctx) error {
	email := c.Query("email")
	roleName := c.Query("roleName")

	if err := s.Manager.AddUserToRole(c.Context(), email, roleName); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": membershipErrorMessage(err, "The user was not able to be added to the role"),
		})
	}

	return c.JSON(fiber.Map{"result": "Success, user has been added to the role"})
}

// GetUserRoles handles GET /api/Setup/GetUserRoles?email=
func (s *SetupController) GetUserRoles(c *fiber.Ctx) error {
	roles, err := s.Manager.UserRoles(c.Context(), c.Query("email"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User does not exist"})
		}
		s.Logger.Error("GetUserRoles error: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}

	return c.JSON(roles)
}

// RemoveUserFromRole handles POST /api/Setup/RemoveUserFromRole?email=&roleName=
func (s *SetupController) RemoveUserFromRole(c *fiber.Ctx) error {
	email := c.Query("email")
	roleName := c.Query("roleName")

	if err := s.Manager.RemoveUserFromRole(c.Context(), email, roleName); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": membershipErrorMessage(err, fmt.Sprintf("Unable to remove User %s from role %s", email, roleName)),
		})
	}

	return c.JSON(fiber.Map{
		"result": fmt.Sprintf("User %s has been removed from role %s", email, roleName),
	})
}

func membershipErrorMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "User does not exist"
	case errors.Is(err, ErrRoleNotFound):
		return "Role does not exist"
	}
	return fallback
}

// RegisterRoutes mounts the authentication and setup endpoints on app
func RegisterRoutes(app *fiber.App, auth *AuthController, setup *SetupController) {
	authentication := app.Group("/api/Authentication")
	authentication.Post("/Register", auth.Register)
	authentication.Post("/Login", auth.Login)

	admin := app.Group("/api/Setup")
	admin.Get("/", setup.GetAllRoles)
	admin.Post("/", setup.CreateRole)
	admin.Get("/GetAllUsers", setup.GetAllUsers)
	admin.Post("/AddUserToRole", setup.AddUserToRole)
	admin.Get("/GetUserRoles", setup.GetUserRoles)
	admin.Post("/RemoveUserFromRole", setup.RemoveUserFromRole)
}
