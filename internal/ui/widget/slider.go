package widget

import (
	"math"

	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Slider picks a value in [0, 1] by dragging a thumb along a track. With
// Steps > 1 the value snaps to Steps evenly spaced positions.
type Slider struct {
	ui.Base
	Steps    int
	OnChange func(v float32)

	value    ui.Deferred[float32]
	dragging bool
}

func NewSlider(b ui.Bounds, initial float32, steps int, onChange func(v float32)) *Slider {
	s := &Slider{
		Base:     ui.NewBase(b, ui.ColorSecondary),
		Steps:    steps,
		OnChange: onChange,
	}
	s.value = ui.NewDeferred(s.snap(initial))
	return s
}

// Value returns the committed value.
func (s *Slider) Value() float32 { return s.value.Get() }

// SetValue stages v. OnChange runs when it is committed.
func (s *Slider) SetValue(v float32) { s.value.Set(s.snap(v)) }

func (s *Slider) Dragging() bool { return s.dragging }

func (s *Slider) snap(v float32) float32 {
	v = mgl32.Clamp(v, 0, 1)
	if s.Steps > 1 {
		n := float64(s.Steps - 1)
		v = float32(math.Round(float64(v)*n) / n)
	}
	return v
}

func (s *Slider) thumbWidth() float32 {
	size := s.Scale()
	return min(max(size.Y()/2, 4), size.X())
}

func (s *Slider) Update() bool {
	layout := s.Base.Update()
	if s.value.Apply() {
		s.MarkDirty(true)
		if s.OnChange != nil {
			s.OnChange(s.value.Get())
		}
	}
	return layout
}

func (s *Slider) Draw(offset mgl32.Vec2) {
	if !s.Visible() {
		return
	}
	size := s.Scale()
	s.DrawQuad(offset, size, s.Color())

	tw := s.thumbWidth()
	x := s.value.Get() * (size.X() - tw)
	thumb := ui.ColorPrimary
	if s.dragging {
		thumb = ui.ColorPressed
	}
	s.DrawQuad(offset.Add(mgl32.Vec2{x, 0}), mgl32.Vec2{tw, size.Y()}, s.Theme().Color(thumb))
}

func (s *Slider) HandleInput(p ui.Pointer, offset mgl32.Vec2) bool {
	if !s.Visible() {
		return false
	}
	if !s.dragging {
		if !p.MouseJustPressed() || !s.IsMouseOver(p.CursorPos(), offset) {
			return false
		}
		s.dragging = true
		s.MarkDirty(true)
	} else if !p.MouseDown() {
		s.dragging = false
		s.MarkDirty(true)
		return false
	}

	tw := s.thumbWidth()
	track := s.Scale().X() - tw
	if track <= 0 {
		return true
	}
	s.SetValue((p.CursorPos().X() - offset.X() - tw/2) / track)
	return true
}
