package services

import (
	"sync"
	"time"

	"github.com/parcelshield/shieldkit/core"
)

// FakeStorage is a test-only fake implementing core.KeyValueStorage.
// It stores entries in a map and exposes error fields for behavior
// injection.
type FakeStorage struct {
	entries   map[string]string
	mu        sync.RWMutex
	getErr    error
	putErr    error
	deleteErr error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		entries: make(map[string]string),
	}
}

func (f *FakeStorage) Get(key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.getErr != nil {
		return "", f.getErr
	}

	value, ok := f.entries[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return value, nil
}

func (f *FakeStorage) Put(entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return f.putErr
	}

	for key, value := range entries {
		f.entries[key] = value
	}
	return nil
}

func (f *FakeStorage) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *FakeStorage) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// RenderCall records one call to any FakeRenderer method.
type RenderCall struct {
	Op      string
	Target  string
	Message string
	Entries []core.ListEntry
	Name    string
	Size    int64
	Result  *core.DetectionResult
}

// FakeRenderer is a test-only fake implementing core.Renderer. It
// records every call in order, per target.
type FakeRenderer struct {
	mu    sync.Mutex
	calls []RenderCall
}

func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

func (f *FakeRenderer) record(call RenderCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *FakeRenderer) Loading(target string) {
	f.record(RenderCall{Op: "loading", Target: target})
}

func (f *FakeRenderer) Error(target, message string) {
	f.record(RenderCall{Op: "error", Target: target, Message: message})
}

func (f *FakeRenderer) Empty(target, message string) {
	f.record(RenderCall{Op: "empty", Target: target, Message: message})
}

func (f *FakeRenderer) List(target string, entries []core.ListEntry) {
	copied := make([]core.ListEntry, len(entries))
	copy(copied, entries)
	f.record(RenderCall{Op: "list", Target: target, Entries: copied})
}

func (f *FakeRenderer) Preview(target, filename string, sizeBytes int64) {
	f.record(RenderCall{Op: "preview", Target: target, Name: filename, Size: sizeBytes})
}

func (f *FakeRenderer) Verdict(target string, result *core.DetectionResult) {
	f.record(RenderCall{Op: "verdict", Target: target, Result: result})
}

// Calls returns every recorded call for one target, in order.
func (f *FakeRenderer) Calls(target string) []RenderCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []RenderCall
	for _, call := range f.calls {
		if call.Target == target {
			out = append(out, call)
		}
	}
	return out
}

// Last returns the most recent call for one target, or nil.
func (f *FakeRenderer) Last(target string) *RenderCall {
	calls := f.Calls(target)
	if len(calls) == 0 {
		return nil
	}
	return &calls[len(calls)-1]
}

// FlashRecord is one Flash call seen by FakeNotifier.
type FlashRecord struct {
	Area       string
	Tone       core.Tone
	Message    string
	ClearAfter time.Duration
}

// BusyRecord is one SetBusy call seen by FakeNotifier.
type BusyRecord struct {
	Control string
	Busy    bool
}

// FakeNotifier is a test-only fake implementing core.Notifier.
type FakeNotifier struct {
	mu      sync.Mutex
	alerts  []string
	flashes []FlashRecord
	clears  []string
	busy    []BusyRecord
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (f *FakeNotifier) Alert(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, message)
}

func (f *FakeNotifier) Flash(area string, tone core.Tone, message string, clearAfter time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flashes = append(f.flashes, FlashRecord{Area: area, Tone: tone, Message: message, ClearAfter: clearAfter})
}

func (f *FakeNotifier) Clear(area string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears = append(f.clears, area)
}

func (f *FakeNotifier) SetBusy(control string, busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = append(f.busy, BusyRecord{Control: control, Busy: busy})
}

func (f *FakeNotifier) Alerts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.alerts...)
}

// Flashes returns every flash shown in one area, in order.
func (f *FakeNotifier) Flashes(area string) []FlashRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []FlashRecord
	for _, record := range f.flashes {
		if record.Area == area {
			out = append(out, record)
		}
	}
	return out
}

// LastFlash returns the most recent flash in one area, or nil.
func (f *FakeNotifier) LastFlash(area string) *FlashRecord {
	flashes := f.Flashes(area)
	if len(flashes) == 0 {
		return nil
	}
	return &flashes[len(flashes)-1]
}

func (f *FakeNotifier) Clears() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.clears...)
}

// Busy returns the SetBusy history for one control.
func (f *FakeNotifier) Busy(control string) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []bool
	for _, record := range f.busy {
		if record.Control == control {
			out = append(out, record.Busy)
		}
	}
	return out
}

// FakeDisplay is a test-only fake implementing core.SessionDisplay.
type FakeDisplay struct {
	mu        sync.Mutex
	loggedIn  []*core.User
	loggedOut int
}

func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

func (f *FakeDisplay) ShowLoggedIn(user *core.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = append(f.loggedIn, user)
}

func (f *FakeDisplay) ShowLoggedOut() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut++
}

// CurrentUser returns the most recently displayed user, or nil when
// the last transition was to logged out.
func (f *FakeDisplay) CurrentUser() *core.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loggedIn) == 0 {
		return nil
	}
	return f.loggedIn[len(f.loggedIn)-1]
}

func (f *FakeDisplay) LoggedOutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedOut
}

// FakeConfirmer is a test-only fake implementing core.Confirmer with a
// fixed answer.
type FakeConfirmer struct {
	Answer  bool
	mu      sync.Mutex
	prompts []string
}

func (f *FakeConfirmer) Confirm(prompt string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.Answer
}

func (f *FakeConfirmer) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// SwitchRecord is one SwitchTo call seen by FakeNav.
type SwitchRecord struct {
	Page  string
	After time.Duration
}

// FakeNav is a test-only fake implementing core.Navigator.
type FakeNav struct {
	mu       sync.Mutex
	switches []SwitchRecord
}

func NewFakeNav() *FakeNav {
	return &FakeNav{}
}

func (f *FakeNav) SwitchTo(page string, after time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.switches = append(f.switches, SwitchRecord{Page: page, After: after})
}

func (f *FakeNav) Switches() []SwitchRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SwitchRecord(nil), f.switches...)
}

var (
	_ core.KeyValueStorage = (*FakeStorage)(nil)
	_ core.Renderer        = (*FakeRenderer)(nil)
	_ core.Notifier        = (*FakeNotifier)(nil)
	_ core.SessionDisplay  = (*FakeDisplay)(nil)
	_ core.Confirmer       = (*FakeConfirmer)(nil)
	_ core.Navigator       = (*FakeNav)(nil)
)
