package menu

import (
	"mini-ui/internal/config"
	"mini-ui/internal/ui"
	"mini-ui/internal/ui/widget"
)

// Settings is the panel with the pacing controls.
type Settings struct {
	Panel *ui.Container

	fpsLimit *widget.Slider
	vsync    *widget.Toggle
	pacing   *widget.Button
	theme    *widget.Button
	quit     *widget.Button

	action Action
}

// FPS limit slider: 0..0.99 maps to 30..240, the far end means uncapped.
const (
	minFPS = 30
	maxFPS = 240
)

func sliderToFPS(v float32) int {
	if v > 0.99 {
		return 0
	}
	return int(minFPS + v*(maxFPS-minFPS) + 0.5)
}

func fpsToSlider(fps int) float32 {
	if fps <= 0 {
		return 1
	}
	v := float32(fps-minFPS) / float32(maxFPS-minFPS)
	// stay clear of the uncapped end
	return min(max(v, 0), 0.95)
}

func NewSettings(theme string) *Settings {
	s := &Settings{
		Panel: widget.NewPanel(ui.PixelBounds(320, 200), ui.ColumnLayout, theme),
	}
	s.Panel.SetChildAlignment(ui.AlignCenter)

	s.fpsLimit = ui.Add(s.Panel, widget.NewSlider(ui.PixelBounds(280, 16), fpsToSlider(config.GetFPSLimit()), maxFPS-minFPS+1, func(v float32) {
		config.SetFPSLimit(sliderToFPS(v))
	}))
	s.vsync = ui.Add(s.Panel, widget.NewToggle("VSync", ui.PixelBounds(40, 20), config.GetVSync(), config.SetVSync))
	s.pacing = ui.Add(s.Panel, widget.NewButton("Pacing", ui.PixelBounds(280, 32), func() {
		s.action = ActionCyclePacing
	}))
	s.theme = ui.Add(s.Panel, widget.NewButton("Theme", ui.PixelBounds(280, 32), func() {
		s.action = ActionCycleTheme
	}))
	s.quit = ui.Add(s.Panel, widget.NewButton("Quit", ui.PixelBounds(280, 32), func() {
		s.action = ActionQuit
	}))
	return s
}

// Sync pulls values that may have been changed outside the panel.
func (s *Settings) Sync() {
	if s.vsync.On() != config.GetVSync() {
		s.vsync.SetOn(config.GetVSync())
	}
}

// take returns and clears the action recorded by the last click.
func (s *Settings) take() Action {
	a := s.action
	s.action = ActionNone
	return a
}
