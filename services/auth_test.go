package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parcelshield/shieldkit/core"
)

type authHarness struct {
	auth     *AuthController
	sessions *SessionStore
	notify   *FakeNotifier
	display  *FakeDisplay
	nav      *FakeNav
	requests *int
}

func newAuthHarness(t *testing.T, handler http.HandlerFunc) *authHarness {
	t.Helper()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	notify := NewFakeNotifier()
	display := NewFakeDisplay()
	nav := NewFakeNav()
	sessions := NewSessionStore(NewFakeStorage(), display, nil)
	api := NewAPIClient(server.URL, nil, sessions, nil)

	return &authHarness{
		auth:     NewAuthController(api, sessions, notify, nav, nil),
		sessions: sessions,
		notify:   notify,
		display:  display,
		nav:      nav,
		requests: &requests,
	}
}

// Requirement: registration rejects blank credentials locally, derives
// the role from the admin secret, and hands off to the login page on
// success.
func TestAuthRegister(t *testing.T) {
	t.Run("blank credentials never reach the server", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {})

		err := h.auth.Register(context.Background(), "  ", "pw", "")

		if !errors.Is(err, core.ErrCredentialsRequired) {
			t.Errorf("Register() error = %v, want ErrCredentialsRequired", err)
		}
		if *h.requests != 0 {
			t.Errorf("server saw %d requests, want 0", *h.requests)
		}
		flash := h.notify.LastFlash(core.AreaRegister)
		if flash == nil || flash.Tone != core.ToneError {
			t.Errorf("register flash = %+v, want error tone", flash)
		}
	})

	t.Run("admin secret requests the admin role", func(t *testing.T) {
		var gotRole, gotSecret string
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			var req registerRequest
			json.NewDecoder(r.Body).Decode(&req)
			gotRole = req.Role
			gotSecret = req.RegSecret
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"created"}`))
		})

		if err := h.auth.Register(context.Background(), "al", "pw", "s3cret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if gotRole != core.RoleAdmin {
			t.Errorf("role = %q, want %q", gotRole, core.RoleAdmin)
		}
		if gotSecret != "s3cret" {
			t.Errorf("reg_secret = %q, want forwarded verbatim", gotSecret)
		}
	})

	t.Run("no secret requests the user role", func(t *testing.T) {
		var gotRole string
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			var req registerRequest
			json.NewDecoder(r.Body).Decode(&req)
			gotRole = req.Role
			w.Write([]byte(`{}`))
		})

		if err := h.auth.Register(context.Background(), "bob", "pw", ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if gotRole != "user" {
			t.Errorf("role = %q, want %q", gotRole, "user")
		}
	})

	t.Run("success flashes and switches to login", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		if err := h.auth.Register(context.Background(), "bob", "pw", ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		flash := h.notify.LastFlash(core.AreaRegister)
		if flash == nil || flash.Message != "Account created successfully! Please login." {
			t.Errorf("register flash = %+v", flash)
		}
		switches := h.nav.Switches()
		if len(switches) != 1 || switches[0].Page != core.PageLogin || switches[0].After != registerSwitchDelay {
			t.Errorf("switches = %+v, want login after %v", switches, registerSwitchDelay)
		}
	})

	t.Run("server rejection surfaces the server message", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"Username already exists"}`))
		})

		err := h.auth.Register(context.Background(), "bob", "pw", "")

		if !core.IsDomainError(err) {
			t.Errorf("Register() error = %v, want DomainError", err)
		}
		flash := h.notify.LastFlash(core.AreaRegister)
		if flash == nil || flash.Message != "Username already exists" {
			t.Errorf("register flash = %+v", flash)
		}
		if len(h.nav.Switches()) != 0 {
			t.Error("page switched after a rejected registration")
		}
	})
}

// Requirement: login saves the session, greets by username and goes
// home; credential checks belong to the server.
func TestAuthLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(loginResponse{
				User:  &core.User{ID: 1, Username: "al", Role: "admin"},
				Token: "tok-1",
			})
		})

		if err := h.auth.Login(context.Background(), "al", "pw"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if h.sessions.Token() != "tok-1" {
			t.Errorf("Token() = %q, want tok-1", h.sessions.Token())
		}
		flash := h.notify.LastFlash(core.AreaLogin)
		if flash == nil || flash.Message != "Welcome back, al!" || flash.Tone != core.ToneSuccess {
			t.Errorf("login flash = %+v", flash)
		}
		switches := h.nav.Switches()
		if len(switches) != 1 || switches[0].Page != core.PageHome || switches[0].After != loginSwitchDelay {
			t.Errorf("switches = %+v, want home after %v", switches, loginSwitchDelay)
		}
		if got := h.display.CurrentUser(); got == nil || !got.IsAdmin() {
			t.Errorf("display user = %+v, want admin al", got)
		}
	})

	t.Run("empty credentials are sent as-is", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		})

		err := h.auth.Login(context.Background(), "", "")

		if *h.requests != 1 {
			t.Errorf("server saw %d requests, want 1", *h.requests)
		}
		if !core.IsDomainError(err) {
			t.Errorf("Login() error = %v, want DomainError", err)
		}
		flash := h.notify.LastFlash(core.AreaLogin)
		if flash == nil || flash.Message != "Invalid credentials" {
			t.Errorf("login flash = %+v", flash)
		}
	})

	t.Run("2xx body without a user is a failed login", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token":"tok-1"}`))
		})

		err := h.auth.Login(context.Background(), "al", "pw")

		if err == nil {
			t.Fatal("Login() error = nil for a response missing the user")
		}
		if h.sessions.Token() != "" {
			t.Errorf("Token() = %q, want empty (no partial session)", h.sessions.Token())
		}
		flash := h.notify.LastFlash(core.AreaLogin)
		if flash == nil || flash.Message != "Login failed" || flash.Tone != core.ToneError {
			t.Errorf("login flash = %+v", flash)
		}
		if len(h.nav.Switches()) != 0 {
			t.Error("page switched after a malformed login response")
		}
	})

	t.Run("2xx body without a token is a failed login", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(loginResponse{
				User: &core.User{ID: 1, Username: "al", Role: "admin"},
			})
		})

		err := h.auth.Login(context.Background(), "al", "pw")

		if err == nil {
			t.Fatal("Login() error = nil for a response missing the token")
		}
		if h.sessions.Load() != nil {
			t.Error("session saved from a tokenless response")
		}
	})

	t.Run("failure leaves no session", func(t *testing.T) {
		h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		})

		h.auth.Login(context.Background(), "al", "wrong")

		if h.sessions.Token() != "" {
			t.Errorf("Token() = %q after failed login, want empty", h.sessions.Token())
		}
	})
}

// Requirement: logout is local only, idempotent in effect, and always
// lands on the home page.
func TestAuthLogout(t *testing.T) {
	h := newAuthHarness(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(loginResponse{
			User:  &core.User{ID: 1, Username: "al", Role: "admin"},
			Token: "tok-1",
		})
	})
	if err := h.auth.Login(context.Background(), "al", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	before := *h.requests

	if err := h.auth.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if *h.requests != before {
		t.Error("Logout() contacted the server")
	}
	if h.sessions.Token() != "" {
		t.Errorf("Token() = %q after logout, want empty", h.sessions.Token())
	}
	alerts := h.notify.Alerts()
	if len(alerts) != 1 || alerts[0] != "Logged out successfully" {
		t.Errorf("alerts = %v", alerts)
	}
	switches := h.nav.Switches()
	last := switches[len(switches)-1]
	if last.Page != core.PageHome || last.After != 0 {
		t.Errorf("last switch = %+v, want immediate home", last)
	}
	if h.display.LoggedOutCount() == 0 {
		t.Error("display never shown logged out")
	}

	// A second logout with no session still succeeds.
	if err := h.auth.Logout(); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}
