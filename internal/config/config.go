package config

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"mini-ui/internal/pacing"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds render, pacing and UI configuration.
type Settings struct {
	mu sync.RWMutex
	v  values
}

type values struct {
	fpsLimit      int
	pacingMode    pacing.Mode
	spinThreshold time.Duration
	emaWeight     float64
	historySize   int

	themeName string
	themeFile string
	slowFrame time.Duration

	windowWidth  int
	windowHeight int
	vsync        bool
}

func defaults() values {
	return values{
		fpsLimit:      144,
		pacingMode:    pacing.ModeHybrid,
		spinThreshold: pacing.DefaultSpinThreshold,
		emaWeight:     pacing.DefaultEMAWeight,
		historySize:   pacing.DefaultHistorySize,
		themeName:     "dark",
		slowFrame:     16 * time.Millisecond,
		windowWidth:   1280,
		windowHeight:  720,
	}
}

var global = &Settings{v: defaults()}

// Reset restores every setting to its default.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v = defaults()
}

// GetFPSLimit returns the frame rate cap, 0 meaning unlimited.
func GetFPSLimit() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.fpsLimit
}

// SetFPSLimit sets the frame rate cap, clamped to 0..1000.
func SetFPSLimit(fps int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.fpsLimit = min(max(fps, 0), 1000)
}

func GetPacingMode() pacing.Mode {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.pacingMode
}

// SetPacingMode clamps out-of-range values to the nearest mode.
func SetPacingMode(m int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.pacingMode = pacing.ClampMode(m)
}

func GetSpinThreshold() time.Duration {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.spinThreshold
}

// SetSpinThreshold sets the pacer's spin tail. Negative values become zero.
func SetSpinThreshold(d time.Duration) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.spinThreshold = max(d, 0)
}

func GetEMAWeight() float64 {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.emaWeight
}

// SetEMAWeight sets the adaptive pacer's smoothing weight, clamped to 0..1.
func SetEMAWeight(w float64) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.emaWeight = min(max(w, 0), 1)
}

func GetHistorySize() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.historySize
}

// SetHistorySize sets how many frames the statistics cover, 1..10000.
func SetHistorySize(n int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.historySize = min(max(n, 1), 10000)
}

func GetThemeName() string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.themeName
}

func SetThemeName(name string) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.themeName = name
}

// GetThemeFile returns an optional TOML file with extra themes.
func GetThemeFile() string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.themeFile
}

func SetThemeFile(path string) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.themeFile = path
}

// GetSlowFrameThreshold returns the frame time above which a frame is logged.
func GetSlowFrameThreshold() time.Duration {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.slowFrame
}

func SetSlowFrameThreshold(d time.Duration) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.slowFrame = max(d, time.Millisecond)
}

func GetWindowSize() (int, int) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.windowWidth, global.v.windowHeight
}

// SetWindowSize sets the initial window size, at least 320x240.
func SetWindowSize(w, h int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.windowWidth = max(w, 320)
	global.v.windowHeight = max(h, 240)
}

func GetVSync() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.v.vsync
}

func SetVSync(on bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.v.vsync = on
}

// PacingOptions builds pacer options from the current settings.
func PacingOptions() pacing.Options {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return pacing.Options{
		Mode:          global.v.pacingMode,
		SpinThreshold: global.v.spinThreshold,
		EMAWeight:     global.v.emaWeight,
		HistorySize:   global.v.historySize,
	}
}

type file struct {
	Window struct {
		Width  *int  `toml:"width"`
		Height *int  `toml:"height"`
		VSync  *bool `toml:"vsync"`
	} `toml:"window"`
	Pacing struct {
		FPSLimit      *int     `toml:"fps_limit"`
		Mode          *string  `toml:"mode"`
		SpinThreshold *string  `toml:"spin_threshold"`
		EMAWeight     *float64 `toml:"ema_weight"`
		History       *int     `toml:"history"`
	} `toml:"pacing"`
	UI struct {
		Theme     *string `toml:"theme"`
		ThemeFile *string `toml:"theme_file"`
		SlowFrame *string `toml:"slow_frame"`
	} `toml:"ui"`
}

// LoadFile reads a TOML settings file and applies it.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return Load(data)
}

// Load applies a TOML settings document. Keys that are absent keep their
// current values. Nothing is applied if the document is invalid.
func Load(data []byte) error {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	var mode pacing.Mode
	if f.Pacing.Mode != nil {
		m, ok := pacing.ParseMode(*f.Pacing.Mode)
		if !ok {
			return fmt.Errorf("decode config: unknown pacing mode %q", *f.Pacing.Mode)
		}
		mode = m
	}
	spin, err := parseDuration("pacing.spin_threshold", f.Pacing.SpinThreshold)
	if err != nil {
		return err
	}
	slow, err := parseDuration("ui.slow_frame", f.UI.SlowFrame)
	if err != nil {
		return err
	}

	if f.Window.Width != nil || f.Window.Height != nil {
		w, h := GetWindowSize()
		if f.Window.Width != nil {
			w = *f.Window.Width
		}
		if f.Window.Height != nil {
			h = *f.Window.Height
		}
		SetWindowSize(w, h)
	}
	if f.Window.VSync != nil {
		SetVSync(*f.Window.VSync)
	}
	if f.Pacing.FPSLimit != nil {
		SetFPSLimit(*f.Pacing.FPSLimit)
	}
	if f.Pacing.Mode != nil {
		SetPacingMode(int(mode))
	}
	if spin != nil {
		SetSpinThreshold(*spin)
	}
	if f.Pacing.EMAWeight != nil {
		SetEMAWeight(*f.Pacing.EMAWeight)
	}
	if f.Pacing.History != nil {
		SetHistorySize(*f.Pacing.History)
	}
	if f.UI.Theme != nil {
		SetThemeName(*f.UI.Theme)
	}
	if f.UI.ThemeFile != nil {
		SetThemeFile(*f.UI.ThemeFile)
	}
	if slow != nil {
		SetSlowFrameThreshold(*slow)
	}
	return nil
}

func parseDuration(key string, s *string) (*time.Duration, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", key, err)
	}
	return &d, nil
}
