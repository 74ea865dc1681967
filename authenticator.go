package auth

import (
	"context"
	"errors"
)

// AuthResult is the uniform response envelope of the authentication
// endpoints: a success flag, the issued token on success, and human readable
// error messages on failure. Never persisted.
type AuthResult struct {
	Result bool     `json:"result"`
	Token  string   `json:"token,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func authFailure(messages ...string) AuthResult {
	return AuthResult{Result: false, Errors: messages}
}

func authSuccess(token string) AuthResult {
	return AuthResult{Result: true, Token: token}
}

// Authenticator orchestrates the credential store, the claims assembler, and
// the token service to fulfill registration and login requests.
type Authenticator struct {
	users     CredentialStore
	assembler *ClaimsAssembler
	tokens    TokenService
	logger    Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users CredentialStore, assembler *ClaimsAssembler, tokens TokenService) *Authenticator {
	return &Authenticator{
		users:     users,
		assembler: assembler,
		tokens:    tokens,
		logger:    defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	a.logger = logger
	return a
}

// Register creates a new user with the given credentials, assigns the client
// role, and returns a freshly issued token. Duplicate emails fail with
// "Email already exist"; store level creation failures (password policy
// included) map to a coarse "Server Error" without surfacing store detail.
func (a *Authenticator) Register(ctx context.Context, email, password string) AuthResult {
	existing, err := a.users.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		a.logger.Error("Register find user error: %s", err)
		return authFailure("Server Error")
	}

	if existing != nil {
		return authFailure("Email already exist")
	}

	user, err := a.users.CreateUser(ctx, email, password)
	if err != nil {
		a.logger.Error("Register create user error: %s", err)
		return authFailure("Server Error")
	}

	if err := a.users.AddUserToRole(ctx, user, RoleClient); err != nil {
		// registration already succeeded, the membership can be repaired
		// via the admin endpoints
		a.logger.Error("Register assign role %s error: %s", RoleClient, err)
	}

	return a.issueFor(ctx, user)
}

// Login verifies the credentials and returns a freshly issued token. An
// unknown email reports "Invalid Payload", a wrong password "Invalid
// credentials". Password comparison happens inside the credential store.
func (a *Authenticator) Login(ctx context.Context, email, password string) AuthResult {
	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return authFailure("Invalid Payload")
		}
		a.logger.Error("Login find user error: %s", err)
		return authFailure("Server Error")
	}

	if !a.users.CheckPassword(ctx, user, password) {
		return authFailure("Invalid credentials")
	}

	return a.issueFor(ctx, user)
}

func (a *Authenticator) issueFor(ctx context.Context, user *User) AuthResult {
	claims, err := a.assembler.Assemble(ctx, user)
	if err != nil {
		a.logger.Error("assemble claims error: %s", err)
		return authFailure("Server Error")
	}

	token, err := a.tokens.Issue(claims)
	if err != nil {
		a.logger.Error("issue token error: %s", err)
		return authFailure("Server Error")
	}

	return authSuccess(token)
}
