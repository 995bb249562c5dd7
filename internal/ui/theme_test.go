package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const sampleThemes = `
[[theme]]
name = "ocean"
corner_radius = 6
padding = 12
spacing = 4

[theme.colors]
background = "#000080"
primary = "#00ff00cc"
text = "#ffffff"

[theme.alpha]
text = 0.5
`

func TestParseThemes(t *testing.T) {
	ts, err := ParseThemes([]byte(sampleThemes))
	if err != nil {
		t.Fatalf("ParseThemes: %v", err)
	}
	if len(ts) != 1 {
		t.Fatalf("got %d themes, want 1", len(ts))
	}
	th := ts[0]
	if th.Name() != "ocean" || th.Padding() != 12 || th.Spacing() != 4 || th.CornerRadius() != 6 {
		t.Errorf("metrics = %q %v %v %v", th.Name(), th.Padding(), th.Spacing(), th.CornerRadius())
	}
	if got := th.Color(ColorBackground); !got.ApproxEqual(mgl32.Vec4{0, 0, float32(128) / 255, 1}) {
		t.Errorf("background = %v", got)
	}
	if got := th.Color(ColorPrimary); got.W() != float32(0xcc)/255 || got.Y() != 1 {
		t.Errorf("primary = %v", got)
	}
	if got := th.Color(ColorText).W(); got != 0.5 {
		t.Errorf("text alpha = %v, want 0.5", got)
	}
	if th.Color(ColorError) != DefaultTheme.Color(ColorError) {
		t.Errorf("missing category should fall back to the default theme")
	}
}

func TestParseThemesRejectsUnknownCategory(t *testing.T) {
	_, err := ParseThemes([]byte("[[theme]]\nname = \"x\"\n[theme.colors]\nsparkle = \"#ffffff\"\n"))
	if err == nil {
		t.Fatalf("expected an error for an unknown category")
	}
}

func TestLookupUnknownThemeFallsBack(t *testing.T) {
	if got := LookupTheme("no-such-theme").Value(); got != DefaultTheme {
		t.Errorf("got %v, want DefaultTheme", got)
	}
	var empty Base
	if empty.Theme() != DefaultTheme {
		t.Errorf("zero handle should resolve to DefaultTheme")
	}
}

func TestRegisterThemeRejectsDuplicates(t *testing.T) {
	if err := RegisterTheme(NewTheme("default", nil, 0, 0, 0)); err == nil {
		t.Errorf("duplicate registration should fail")
	}
	if err := RegisterTheme(NewTheme("", nil, 0, 0, 0)); err == nil {
		t.Errorf("empty name should fail")
	}
}

func TestUnknownCategoryIsMagenta(t *testing.T) {
	if got := DefaultTheme.Color(ColorCategory(200)); got != (mgl32.Vec4{1, 0, 1, 1}) {
		t.Errorf("got %v", got)
	}
}
