// Package render provides the terminal adapter implementing the UI
// ports for the CLI.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/parcelshield/shieldkit/core"
	"github.com/spf13/cast"
)

// Terminal implements every UI port over a writer and an optional
// reader for confirmations. Render targets become section headers;
// busy toggles and timed clears have no terminal equivalent and are
// dropped.
type Terminal struct {
	out       io.Writer
	in        *bufio.Reader
	assumeYes bool
}

var (
	_ core.Renderer       = (*Terminal)(nil)
	_ core.Notifier       = (*Terminal)(nil)
	_ core.SessionDisplay = (*Terminal)(nil)
	_ core.Confirmer      = (*Terminal)(nil)
	_ core.Navigator      = (*Terminal)(nil)
)

// NewTerminal builds a terminal over out, reading confirmations from
// in. A nil in together with assumeYes=false declines every prompt.
func NewTerminal(out io.Writer, in io.Reader, assumeYes bool) *Terminal {
	t := &Terminal{out: out, assumeYes: assumeYes}
	if in != nil {
		t.in = bufio.NewReader(in)
	}
	return t
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Loading(target string) {
	if target == core.TargetDetection {
		t.printf("[%s] Analyzing image for AI artifacts...\n", target)
		return
	}
	t.printf("[%s] loading...\n", target)
}

func (t *Terminal) Error(target, message string) {
	t.printf("[%s] %s\n", target, message)
}

func (t *Terminal) Empty(target, message string) {
	t.printf("[%s] %s\n", target, message)
}

func (t *Terminal) List(target string, entries []core.ListEntry) {
	t.printf("[%s] %d item(s)\n", target, len(entries))
	for _, entry := range entries {
		if entry.Rendered != "" {
			for _, line := range strings.Split(entry.Rendered, "\n") {
				t.printf("  %s\n", line)
			}
			continue
		}
		path := entry.Path
		if path == "" {
			path = "N/A"
		}
		line := fmt.Sprintf("  #%d %s  %s", entry.ID, entry.Title, path)
		if entry.CreatedAt != "" {
			line += "  (" + entry.CreatedAt + ")"
		}
		t.printf("%s\n", line)
	}
}

func (t *Terminal) Preview(target, filename string, sizeBytes int64) {
	t.printf("[%s] %s (%.1f KB)\n", target, filename, float64(sizeBytes)/1024)
}

func (t *Terminal) Verdict(target string, result *core.DetectionResult) {
	t.printf("[%s] verdict: %s\n", target, result.Label())
	t.printf("  confidence:  %s%%\n", cast.ToString(result.ConfidencePercent))
	t.printf("  probability: %s\n", cast.ToString(result.ProbabilityScore))
	if result.LikelyGenerator != "" {
		t.printf("  generator:   %s\n", result.LikelyGenerator)
	}
	if result.Explanation != "" {
		t.printf("  explanation: %s\n", result.Explanation)
	}
}

func (t *Terminal) Alert(message string) {
	t.printf("! %s\n", message)
}

func (t *Terminal) Flash(area string, tone core.Tone, message string, clearAfter time.Duration) {
	prefix := "info"
	switch tone {
	case core.ToneSuccess:
		prefix = "ok"
	case core.ToneError:
		prefix = "error"
	}
	t.printf("[%s] %s: %s\n", area, prefix, message)
}

func (t *Terminal) Clear(area string) {}

func (t *Terminal) SetBusy(control string, busy bool) {}

func (t *Terminal) ShowLoggedIn(user *core.User) {
	role := ""
	if user.IsAdmin() {
		role = " (admin)"
	}
	t.printf("logged in as %s%s\n", user.Username, role)
}

func (t *Terminal) ShowLoggedOut() {
	t.printf("logged out\n")
}

// Confirm prompts on the terminal; only an explicit yes proceeds.
func (t *Terminal) Confirm(prompt string) bool {
	if t.assumeYes {
		return true
	}
	if t.in == nil {
		return false
	}
	t.printf("%s [y/N] ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// SwitchTo is a no-op: the CLI has no pages to switch between.
func (t *Terminal) SwitchTo(page string, after time.Duration) {}
