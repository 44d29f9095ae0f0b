package core

import "time"

// Ports define interfaces for the external collaborators: the host UI
// and the durable local store. The library computes what to show;
// collaborators decide how to show it.

// ============================================
// STORAGE PORT (durable client state)
// ============================================

// KeyValueStorage is the durable client-state store.
//
// Put persists all entries as a single atomic write: a reader never
// observes some of the entries without the others.
type KeyValueStorage interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(key string) (string, error)
	Put(entries map[string]string) error
	Delete(keys ...string) error
}

// ============================================
// UI PORTS
// ============================================

// Tone classifies a flash message.
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneError
)

// ListEntry is one row handed to the Renderer. Public views carry the
// template output in Rendered; admin views carry the probed display
// title and path plus edit/delete affordances.
type ListEntry struct {
	ID        int64
	Rendered  string
	Title     string
	Path      string
	CreatedAt string
	Editable  bool
}

// Renderer is the view port. Each logical view has one render target;
// a load cycle replaces the target's content exactly once.
type Renderer interface {
	Loading(target string)
	Error(target, message string)
	Empty(target, message string)
	List(target string, entries []ListEntry)
	Preview(target, filename string, sizeBytes int64)
	Verdict(target string, result *DetectionResult)
}

// Notifier is the side-channel message port: blocking-free alerts,
// flash areas with optional auto-clear, and affordance gating.
type Notifier interface {
	Alert(message string)
	// Flash shows a message in a named area. A positive clearAfter asks
	// the host to clear the area after that delay.
	Flash(area string, tone Tone, message string, clearAfter time.Duration)
	Clear(area string)
	SetBusy(control string, busy bool)
}

// SessionDisplay reflects session state in the application chrome:
// login-link label and admin-panel visibility.
type SessionDisplay interface {
	ShowLoggedIn(user *User)
	ShowLoggedOut()
}

// Confirmer gates destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Navigator switches the visible page, optionally after a delay.
type Navigator interface {
	SwitchTo(page string, after time.Duration)
}

// TokenSource exposes the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Render targets, flash areas, controls and pages shared between the
// controllers and the host UI.
const (
	TargetAdminItems = "admin-items"
	TargetDetection  = "detection-result"
	TargetPreview    = "preview"

	AreaAdminMsg = "admin-msg"
	AreaRegister = "register-message"
	AreaLogin    = "login-message"

	ControlUploadSubmit = "upload-submit"

	PageHome  = "home"
	PageLogin = "login"
)
