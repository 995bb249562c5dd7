package menu

import (
	"testing"

	"mini-ui/internal/config"
	"mini-ui/internal/graphics/soft"
	"mini-ui/internal/pacing"
	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

type nowhere struct{}

func (nowhere) CursorPos() mgl32.Vec2  { return mgl32.Vec2{-1, -1} }
func (nowhere) MouseDown() bool        { return false }
func (nowhere) MouseJustPressed() bool { return false }

func newScreen(t *testing.T) (*Screen, *soft.Painter) {
	t.Helper()
	p := soft.New(800, 600)
	s := NewScreen(800, 600, "dark")
	if err := s.Initialize(p); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	s.Draw()
	return s, p
}

func TestFPSSliderMapping(t *testing.T) {
	cases := []struct {
		v    float32
		want int
	}{
		{0, 30}, {0.5, 135}, {0.99, 238}, {1, 0},
	}
	for _, tc := range cases {
		if got := sliderToFPS(tc.v); got != tc.want {
			t.Errorf("sliderToFPS(%v) = %d, want %d", tc.v, got, tc.want)
		}
	}
	if fpsToSlider(0) != 1 {
		t.Errorf("uncapped should map to the far end")
	}
	if fpsToSlider(1000) != 0.95 || fpsToSlider(10) != 0 {
		t.Errorf("out-of-range limits not clamped")
	}
	if got := sliderToFPS(fpsToSlider(144)); got != 144 {
		t.Errorf("round trip of 144 = %d", got)
	}
}

func TestAnimateRedrawsOneTile(t *testing.T) {
	s, _ := newScreen(t)

	s.Animate(0)
	if a := s.Update(nowhere{}); a != ActionNone {
		t.Fatalf("action = %v", a)
	}
	s.Draw()
	if got := s.Tiles.LastRender().Draws; got != 1 {
		t.Errorf("tile draws = %d, want 1", got)
	}
	if got := s.Root.LastRender().Draws; got != 1 {
		t.Errorf("root draws = %d, want only the tile strip", got)
	}
}

func TestIdleFrameDrawsNothing(t *testing.T) {
	s, p := newScreen(t)
	s.Update(nowhere{})
	p.ResetCounters()
	s.Draw()
	if p.Calls.Fills != 0 || s.Root.LastRender().Draws != 0 {
		t.Errorf("idle frame drew: fills=%d draws=%d", p.Calls.Fills, s.Root.LastRender().Draws)
	}
	if p.Calls.Blits != 1 {
		t.Errorf("blits = %d, want only the root composite", p.Calls.Blits)
	}
}

func TestButtonsReportActions(t *testing.T) {
	s, _ := newScreen(t)
	for _, tc := range []struct {
		click func()
		want  Action
	}{
		{s.Settings.theme.Click, ActionCycleTheme},
		{s.Settings.pacing.Click, ActionCyclePacing},
		{s.Settings.quit.Click, ActionQuit},
	} {
		tc.click()
		if got := s.Update(nowhere{}); got != tc.want {
			t.Errorf("action = %v, want %v", got, tc.want)
		}
		if got := s.Update(nowhere{}); got != ActionNone {
			t.Errorf("action repeated: %v", got)
		}
	}
}

func TestSettingsWriteConfig(t *testing.T) {
	defer config.Reset()
	s, _ := newScreen(t)

	s.Settings.fpsLimit.SetValue(1)
	s.Update(nowhere{})
	if config.GetFPSLimit() != 0 {
		t.Errorf("fps limit = %d, want uncapped", config.GetFPSLimit())
	}

	config.SetVSync(true)
	s.Update(nowhere{})
	if !s.Settings.vsync.On() {
		t.Errorf("toggle not synced from config")
	}
}

func TestPacingLamps(t *testing.T) {
	s, _ := newScreen(t)
	s.SetPacingMode(pacing.ModeAdaptive)
	s.Update(nowhere{})
	for i, l := range s.lamps {
		want := ui.ColorDisabled
		if pacing.Mode(i) == pacing.ModeAdaptive {
			want = ui.ColorSuccess
		}
		if l.Category() != want {
			t.Errorf("lamp %d = %v, want %v", i, l.Category(), want)
		}
	}
}

func TestScrollTilesClamps(t *testing.T) {
	s, _ := newScreen(t)
	s.ScrollTiles(-50)
	s.Update(nowhere{})
	if s.Tiles.Scroll().X() != 0 {
		t.Errorf("scroll = %v, want 0", s.Tiles.Scroll())
	}
	s.ScrollTiles(10000)
	s.Update(nowhere{})
	limit := s.Tiles.ContentSize().X() - s.Tiles.Scale().X()
	if s.Tiles.Scroll().X() != max(limit, 0) {
		t.Errorf("scroll = %v, want %v", s.Tiles.Scroll().X(), limit)
	}
}
