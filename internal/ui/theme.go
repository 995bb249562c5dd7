package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"weak"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// ColorCategory picks which theme color a component is painted with.
type ColorCategory uint8

const (
	ColorBackground ColorCategory = iota
	ColorPrimary
	ColorSecondary
	ColorText
	ColorTextMuted
	ColorHover
	ColorPressed
	ColorDisabled
	ColorError
	ColorSuccess
	colorCategoryCount
)

var categoryNames = [colorCategoryCount]string{
	"background", "primary", "secondary", "text", "text_muted",
	"hover", "pressed", "disabled", "error", "success",
}

func (c ColorCategory) String() string {
	if c < colorCategoryCount {
		return categoryNames[c]
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

// Theme is an immutable set of colors and metrics.
type Theme struct {
	name         string
	colors       [colorCategoryCount]mgl32.Vec4
	cornerRadius float32
	padding      float32
	spacing      float32
}

// NewTheme builds a theme. Categories missing from colors fall back to
// DefaultTheme's colors.
func NewTheme(name string, colors map[ColorCategory]mgl32.Vec4, cornerRadius, padding, spacing float32) *Theme {
	t := &Theme{name: name, cornerRadius: cornerRadius, padding: padding, spacing: spacing}
	if DefaultTheme != nil {
		t.colors = DefaultTheme.colors
	}
	for c, v := range colors {
		if c < colorCategoryCount {
			t.colors[c] = v
		}
	}
	return t
}

func (t *Theme) Name() string          { return t.name }
func (t *Theme) CornerRadius() float32 { return t.cornerRadius }
func (t *Theme) Padding() float32      { return t.padding }
func (t *Theme) Spacing() float32      { return t.spacing }

// Color returns the color for c, or opaque magenta for an unknown category.
func (t *Theme) Color(c ColorCategory) mgl32.Vec4 {
	if c >= colorCategoryCount {
		return mgl32.Vec4{1, 0, 1, 1}
	}
	return t.colors[c]
}

// DefaultTheme is used whenever a theme lookup fails.
var DefaultTheme = &Theme{
	name: "default",
	colors: [colorCategoryCount]mgl32.Vec4{
		ColorBackground: {0.10, 0.10, 0.10, 1},
		ColorPrimary:    {0.30, 0.30, 0.30, 1},
		ColorSecondary:  {0.20, 0.20, 0.20, 1},
		ColorText:       {1, 1, 1, 1},
		ColorTextMuted:  {0.80, 0.80, 0.80, 1},
		ColorHover:      {0.40, 0.40, 0.40, 1},
		ColorPressed:    {0.25, 0.25, 0.25, 1},
		ColorDisabled:   {0.15, 0.15, 0.15, 0.6},
		ColorError:      {0.50, 0.20, 0.20, 1},
		ColorSuccess:    {0.20, 0.50, 0.20, 1},
	},
	cornerRadius: 0,
	padding:      8,
	spacing:      6,
}

var (
	themesMu sync.RWMutex
	themes   = map[string]*Theme{}
)

func init() {
	themes[DefaultTheme.name] = DefaultTheme
	themes["dark"] = NewTheme("dark", nil, 4, 10, 8)
	themes["light"] = NewTheme("light", map[ColorCategory]mgl32.Vec4{
		ColorBackground: {0.94, 0.94, 0.94, 1},
		ColorPrimary:    {0.75, 0.78, 0.85, 1},
		ColorSecondary:  {0.86, 0.86, 0.86, 1},
		ColorText:       {0.05, 0.05, 0.05, 1},
		ColorTextMuted:  {0.35, 0.35, 0.35, 1},
		ColorHover:      {0.82, 0.85, 0.95, 1},
		ColorPressed:    {0.65, 0.68, 0.78, 1},
		ColorDisabled:   {0.80, 0.80, 0.80, 0.6},
		ColorError:      {0.85, 0.35, 0.35, 1},
		ColorSuccess:    {0.35, 0.70, 0.40, 1},
	}, 4, 10, 8)
}

// RegisterTheme adds t to the registry. Names are unique.
func RegisterTheme(t *Theme) error {
	if t == nil || t.name == "" {
		return fmt.Errorf("register theme: empty name")
	}
	themesMu.Lock()
	defer themesMu.Unlock()
	if _, ok := themes[t.name]; ok {
		return fmt.Errorf("register theme %q: already registered", t.name)
	}
	themes[t.name] = t
	return nil
}

// LookupTheme returns a weak handle to the named theme. Unknown names
// resolve to DefaultTheme.
func LookupTheme(name string) weak.Pointer[Theme] {
	themesMu.RLock()
	t, ok := themes[name]
	themesMu.RUnlock()
	if !ok {
		logger().Warn("unknown theme, using default", "theme", name)
		t = DefaultTheme
	}
	return weak.Make(t)
}

// ThemeNames lists registered theme names.
func ThemeNames() []string {
	themesMu.RLock()
	defer themesMu.RUnlock()
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	return names
}

func resolveTheme(h weak.Pointer[Theme]) *Theme {
	if t := h.Value(); t != nil {
		return t
	}
	return DefaultTheme
}

type themeFile struct {
	Themes []themeEntry `toml:"theme"`
}

type themeEntry struct {
	Name         string             `toml:"name"`
	CornerRadius float32            `toml:"corner_radius"`
	Padding      float32            `toml:"padding"`
	Spacing      float32            `toml:"spacing"`
	Colors       map[string]string  `toml:"colors"`
	Alpha        map[string]float32 `toml:"alpha"`
}

// ParseThemes decodes [[theme]] tables. Colors are "#rrggbb" or
// "#rrggbbaa"; an [theme.alpha] entry overrides the alpha channel.
func ParseThemes(data []byte) ([]*Theme, error) {
	var f themeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}
	out := make([]*Theme, 0, len(f.Themes))
	for _, e := range f.Themes {
		if e.Name == "" {
			return nil, fmt.Errorf("decode themes: theme without name")
		}
		colors := make(map[ColorCategory]mgl32.Vec4, len(e.Colors))
		for key, hex := range e.Colors {
			c, ok := categoryByName(key)
			if !ok {
				return nil, fmt.Errorf("theme %q: unknown color %q", e.Name, key)
			}
			v, err := parseHexColor(hex)
			if err != nil {
				return nil, fmt.Errorf("theme %q color %q: %w", e.Name, key, err)
			}
			if a, ok := e.Alpha[key]; ok {
				v[3] = mgl32.Clamp(a, 0, 1)
			}
			colors[c] = v
		}
		out = append(out, NewTheme(e.Name, colors, e.CornerRadius, e.Padding, e.Spacing))
	}
	return out, nil
}

// LoadThemes reads a TOML theme file and registers every theme in it.
func LoadThemes(path string) ([]*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read themes: %w", err)
	}
	ts, err := ParseThemes(data)
	if err != nil {
		return nil, err
	}
	for _, t := range ts {
		if err := RegisterTheme(t); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func categoryByName(name string) (ColorCategory, bool) {
	for i, n := range categoryNames {
		if n == name {
			return ColorCategory(i), true
		}
	}
	return 0, false
}

func parseHexColor(s string) (mgl32.Vec4, error) {
	alpha := float32(1)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return mgl32.Vec4{}, fmt.Errorf("parse alpha %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return mgl32.Vec4{}, err
	}
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), alpha}, nil
}
