package render

import (
	"strings"
	"testing"

	"github.com/parcelshield/shieldkit/core"
)

// Requirement: lists print rendered entries verbatim and fall back to
// the id/title/path line for admin rows.
func TestTerminalList(t *testing.T) {
	var buf strings.Builder
	term := NewTerminal(&buf, nil, false)

	term.List("scam-tips-list", []core.ListEntry{
		{ID: 1, Rendered: "Check the sender\n  image: /static/t.png"},
	})
	term.List(core.TargetAdminItems, []core.ListEntry{
		{ID: 2, Title: "Fake courier call", Path: "/static/c.png", CreatedAt: "2026-01-01", Editable: true},
	})

	out := buf.String()
	for _, want := range []string{
		"Check the sender",
		"image: /static/t.png",
		"#2 Fake courier call",
		"/static/c.png",
		"2026-01-01",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// Requirement: the preview line shows the filename with its size in KB
// to one decimal.
func TestTerminalPreview(t *testing.T) {
	var buf strings.Builder
	term := NewTerminal(&buf, nil, false)

	term.Preview(core.TargetPreview, "photo.png", 2560)

	if !strings.Contains(buf.String(), "photo.png (2.5 KB)") {
		t.Errorf("output = %q", buf.String())
	}
}

// Requirement: the verdict block carries the label and both metrics.
func TestTerminalVerdict(t *testing.T) {
	var buf strings.Builder
	term := NewTerminal(&buf, nil, false)

	term.Verdict(core.TargetDetection, &core.DetectionResult{
		IsAIGenerated:     true,
		ConfidencePercent: 92.5,
		ProbabilityScore:  0.925,
		LikelyGenerator:   "diffusion model",
	})

	out := buf.String()
	for _, want := range []string{core.VerdictAIGenerated, "92.5", "0.925", "diffusion model"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// Requirement: only an explicit yes confirms; assumeYes bypasses the
// prompt entirely.
func TestTerminalConfirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		assumeYes bool
		want      bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes word", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "default declines", input: "\n", want: false},
		{name: "assume yes skips reading", input: "", assumeYes: true, want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf strings.Builder
			term := NewTerminal(&buf, strings.NewReader(test.input), test.assumeYes)

			if got := term.Confirm("Delete?"); got != test.want {
				t.Errorf("Confirm() = %v, want %v", got, test.want)
			}
			if !test.assumeYes && !strings.Contains(buf.String(), "[y/N]") {
				t.Errorf("prompt missing from output: %q", buf.String())
			}
		})
	}
}

// Requirement: session display names the user and flags admins.
func TestTerminalSessionDisplay(t *testing.T) {
	var buf strings.Builder
	term := NewTerminal(&buf, nil, false)

	term.ShowLoggedIn(&core.User{Username: "al", Role: "admin"})
	term.ShowLoggedOut()

	out := buf.String()
	if !strings.Contains(out, "logged in as al (admin)") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "logged out") {
		t.Errorf("output = %q", out)
	}
}
