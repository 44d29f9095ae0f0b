package shieldkit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type mockStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

func newMockStorage() *mockStorage {
	return &mockStorage{entries: make(map[string]string)}
}

func (m *mockStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStorage) Put(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}

func (m *mockStorage) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

type mockRenderer struct {
	mu      sync.Mutex
	targets map[string]string
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{targets: make(map[string]string)}
}

func (m *mockRenderer) set(target, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets[target] = op
}

func (m *mockRenderer) Loading(target string)                     { m.set(target, "loading") }
func (m *mockRenderer) Error(target, message string)              { m.set(target, "error") }
func (m *mockRenderer) Empty(target, message string)              { m.set(target, "empty") }
func (m *mockRenderer) List(target string, entries []ListEntry)   { m.set(target, "list") }
func (m *mockRenderer) Preview(target, name string, size int64)   { m.set(target, "preview") }
func (m *mockRenderer) Verdict(target string, r *DetectionResult) { m.set(target, "verdict") }

type mockNotifier struct{}

func (mockNotifier) Alert(string)                              {}
func (mockNotifier) Flash(string, Tone, string, time.Duration) {}
func (mockNotifier) Clear(string)                              {}
func (mockNotifier) SetBusy(string, bool)                      {}

func TestNewValidatesConfig(t *testing.T) {
	storage := newMockStorage()
	renderer := newMockRenderer()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing base url",
			cfg:     Config{Storage: storage, Renderer: renderer, Notifier: mockNotifier{}},
			wantErr: ErrBaseURLRequired,
		},
		{
			name:    "missing storage",
			cfg:     Config{BaseURL: "http://localhost:8000", Renderer: renderer, Notifier: mockNotifier{}},
			wantErr: ErrStorageRequired,
		},
		{
			name:    "missing renderer",
			cfg:     Config{BaseURL: "http://localhost:8000", Storage: storage, Notifier: mockNotifier{}},
			wantErr: ErrRendererRequired,
		},
		{
			name:    "missing notifier",
			cfg:     Config{BaseURL: "http://localhost:8000", Storage: storage, Renderer: renderer},
			wantErr: ErrNotifierRequired,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.cfg)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("New() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestNewWiresControllers(t *testing.T) {
	kit, err := New(Config{
		BaseURL:  "http://localhost:8000",
		Storage:  newMockStorage(),
		Renderer: newMockRenderer(),
		Notifier: mockNotifier{},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if kit.Sessions == nil || kit.API == nil || kit.Auth == nil ||
		kit.Content == nil || kit.Upload == nil || kit.Detect == nil {
		t.Fatalf("controller missing from kit: %+v", kit)
	}
	if kit.Sessions.Token() != "" {
		t.Errorf("Token() = %q on a fresh kit, want empty", kit.Sessions.Token())
	}
}

func TestNewRestoresPersistedSession(t *testing.T) {
	storage := newMockStorage()
	user, _ := json.Marshal(&User{ID: 1, Username: "al", Role: "admin"})
	storage.Put(map[string]string{
		"session-user":  string(user),
		"session-token": "tok-1",
	})

	kit, err := New(Config{
		BaseURL:  "http://localhost:8000",
		Storage:  storage,
		Renderer: newMockRenderer(),
		Notifier: mockNotifier{},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if kit.Sessions.Token() != "tok-1" {
		t.Errorf("Token() = %q, want tok-1", kit.Sessions.Token())
	}
	if !kit.Sessions.IsAdmin() {
		t.Error("IsAdmin() = false for a restored admin session")
	}
}

// End-to-end through the facade: login, load a collection, render it.
func TestKitAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"user":  &User{ID: 1, Username: "al", Role: "admin"},
				"token": "tok-1",
			})
		case "/content/scam-tips":
			json.NewEncoder(w).Encode([]ContentItem{{ID: 1, Title: "Beware"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	renderer := newMockRenderer()
	kit, err := New(Config{
		BaseURL:  server.URL,
		Storage:  newMockStorage(),
		Renderer: renderer,
		Notifier: mockNotifier{},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := kit.Auth.Login(context.Background(), "al", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := kit.Content.LoadPublic(context.Background(), KindScamTips); err != nil {
		t.Fatalf("LoadPublic failed: %v", err)
	}

	if got := renderer.targets["scam-tips-list"]; got != "list" {
		t.Errorf("scam-tips-list ended as %q, want list", got)
	}
}
