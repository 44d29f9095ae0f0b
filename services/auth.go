package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parcelshield/shieldkit/core"
	"go.uber.org/zap"
)

// Page-switch delays after a successful register and login. The pause
// leaves the success flash readable before the page changes.
const (
	registerSwitchDelay = 1500 * time.Millisecond
	loginSwitchDelay    = time.Second
)

// AuthController drives register, login and logout against the auth
// endpoints and keeps the owned session in sync.
type AuthController struct {
	api      *APIClient
	sessions *SessionStore
	notify   core.Notifier
	nav      core.Navigator
	log      *zap.SugaredLogger
}

func NewAuthController(api *APIClient, sessions *SessionStore, notify core.Notifier, nav core.Navigator, log *zap.SugaredLogger) *AuthController {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuthController{
		api:      api,
		sessions: sessions,
		notify:   notify,
		nav:      nav,
		log:      log,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	RegSecret string `json:"reg_secret,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *core.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates an account. A non-empty admin secret requests the
// admin role; whether the secret is valid is the server's call.
func (c *AuthController) Register(ctx context.Context, username, password, adminSecret string) error {
	// Step 1: both credentials are required before any request is sent.
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		c.notify.Flash(core.AreaRegister, core.ToneError, "Username and password are required", 0)
		return core.ErrCredentialsRequired
	}

	role := "user"
	if adminSecret != "" {
		role = core.RoleAdmin
	}

	// Step 2: submit the registration.
	reply, err := c.api.PostJSON(ctx, "/auth/register", registerRequest{
		Username:  username,
		Password:  password,
		Role:      role,
		RegSecret: adminSecret,
	})
	if err != nil {
		c.notify.Flash(core.AreaRegister, core.ToneError, "Network error", 0)
		return err
	}
	if !reply.OK() {
		msg := reply.MessageOr("Registration failed")
		c.notify.Flash(core.AreaRegister, core.ToneError, msg, 0)
		return reply.DomainError("Registration failed")
	}

	// Step 3: confirm, then hand the user over to the login page.
	c.notify.Flash(core.AreaRegister, core.ToneSuccess, "Account created successfully! Please login.", 0)
	c.nav.SwitchTo(core.PageLogin, registerSwitchDelay)
	c.log.Infow("account registered", "username", username, "role", role)
	return nil
}

// Login authenticates and saves the returned session. Credential
// checks are left entirely to the server.
func (c *AuthController) Login(ctx context.Context, username, password string) error {
	reply, err := c.api.PostJSON(ctx, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		c.notify.Flash(core.AreaLogin, core.ToneError, "Network error", 0)
		return err
	}
	if !reply.OK() {
		msg := reply.MessageOr("Login failed")
		c.notify.Flash(core.AreaLogin, core.ToneError, msg, 0)
		return reply.DomainError("Login failed")
	}

	var payload loginResponse
	if err := reply.Decode(&payload); err != nil {
		c.notify.Flash(core.AreaLogin, core.ToneError, "Login failed", 0)
		return fmt.Errorf("decode login response: %w", err)
	}
	// A 2xx body without both user and token is a failed login; saving
	// it would commit a partial session.
	if payload.User == nil || payload.Token == "" {
		c.notify.Flash(core.AreaLogin, core.ToneError, "Login failed", 0)
		return fmt.Errorf("login response missing user or token")
	}

	if err := c.sessions.Save(payload.User, payload.Token); err != nil {
		c.notify.Flash(core.AreaLogin, core.ToneError, "Login failed", 0)
		return err
	}

	c.notify.Flash(core.AreaLogin, core.ToneSuccess, fmt.Sprintf("Welcome back, %s!", payload.User.Username), 0)
	c.nav.SwitchTo(core.PageHome, loginSwitchDelay)
	c.log.Infow("logged in", "username", payload.User.Username, "role", payload.User.Role)
	return nil
}

// Logout clears the session locally. There is no server round-trip;
// the token simply stops being attached.
func (c *AuthController) Logout() error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	c.nav.SwitchTo(core.PageHome, 0)
	c.notify.Alert("Logged out successfully")
	c.log.Infow("logged out")
	return nil
}
