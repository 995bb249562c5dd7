package app

import (
	"testing"

	"mini-ui/internal/pacing"
)

func TestNextThemeWrapsInNameOrder(t *testing.T) {
	names := []string{"light", "default", "dark"}
	cases := map[string]string{
		"dark":    "default",
		"default": "light",
		"light":   "dark",
		// Unknown names continue from their sorted position.
		"ember": "light",
		"zzz":   "dark",
	}
	for cur, want := range cases {
		if got := nextTheme(names, cur); got != want {
			t.Errorf("nextTheme(%q) = %q, want %q", cur, got, want)
		}
	}
	if names[0] != "light" {
		t.Fatalf("input slice was reordered: %v", names)
	}
	if got := nextTheme(nil, "dark"); got != "dark" {
		t.Fatalf("empty registry: got %q", got)
	}
}

func TestNextModeCycles(t *testing.T) {
	m := pacing.ModeNone
	seen := map[pacing.Mode]bool{}
	for range 4 {
		seen[m] = true
		m = nextMode(m)
	}
	if m != pacing.ModeNone || len(seen) != 4 {
		t.Fatalf("cycle ended at %v after visiting %d modes", m, len(seen))
	}
}

func TestScrollStep(t *testing.T) {
	if got := scrollStep(0, 1, false); got != -24 {
		t.Errorf("vertical notch: got %v", got)
	}
	if got := scrollStep(-2, 0, false); got != 48 {
		t.Errorf("horizontal notches: got %v", got)
	}
	if got := scrollStep(1, -1, true); got != 24 {
		t.Errorf("modifier prefers vertical: got %v", got)
	}
}

func TestSwapInterval(t *testing.T) {
	if swapInterval(true) != 1 || swapInterval(false) != 0 {
		t.Fatal("swap interval mapping")
	}
}
