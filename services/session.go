package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/parcelshield/shieldkit/core"
	"go.uber.org/zap"
)

// Storage keys for the two persisted client-state values.
const (
	sessionUserKey  = "session-user"
	sessionTokenKey = "session-token"
)

// SessionStore owns the current session: one process-wide instance
// with explicit accessors, passed to every controller that needs auth
// state. Every mutation synchronously updates the session display.
type SessionStore struct {
	storage core.KeyValueStorage
	display core.SessionDisplay
	log     *zap.SugaredLogger

	mu      sync.RWMutex
	current *core.Session
}

var _ core.TokenSource = (*SessionStore)(nil)

func NewSessionStore(storage core.KeyValueStorage, display core.SessionDisplay, log *zap.SugaredLogger) *SessionStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SessionStore{storage: storage, display: display, log: log}
}

// Init restores a persisted session on startup and syncs the display
// either way.
func (s *SessionStore) Init() {
	if session := s.Load(); session != nil {
		s.display.ShowLoggedIn(session.User)
		return
	}
	s.display.ShowLoggedOut()
}

// Save persists user and token as one atomic write, then reflects the
// new session in the display.
func (s *SessionStore) Save(user *core.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.storage.Put(map[string]string{
		sessionUserKey:  string(raw),
		sessionTokenKey: token,
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &core.Session{User: user, Token: token}
	s.mu.Unlock()

	s.display.ShowLoggedIn(user)
	return nil
}

// Load returns the current session, or nil when logged out. A store
// holding only one of the two keys, or an undecodable user record, is
// treated as absent rather than partially authenticated.
func (s *SessionStore) Load() *core.Session {
	s.mu.RLock()
	if s.current != nil {
		defer s.mu.RUnlock()
		return s.current
	}
	s.mu.RUnlock()

	rawUser, err := s.storage.Get(sessionUserKey)
	if err != nil {
		return nil
	}
	token, err := s.storage.Get(sessionTokenKey)
	if err != nil || token == "" {
		return nil
	}

	var user core.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warnw("malformed session state, treating as logged out", "error", err)
		return nil
	}

	session := &core.Session{User: &user, Token: token}
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	return session
}

// Clear removes both keys and reflects the logged-out state in the
// display.
func (s *SessionStore) Clear() error {
	if err := s.storage.Delete(sessionUserKey, sessionTokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.display.ShowLoggedOut()
	return nil
}

// Token implements core.TokenSource; empty when logged out.
func (s *SessionStore) Token() string {
	if session := s.Load(); session != nil {
		return session.Token
	}
	return ""
}

// IsAdmin reports whether the current user carries the admin role.
func (s *SessionStore) IsAdmin() bool {
	if session := s.Load(); session != nil {
		return session.User.IsAdmin()
	}
	return false
}
