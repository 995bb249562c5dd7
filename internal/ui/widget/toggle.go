package widget

import (
	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Toggle is an on/off switch, green when on and red when off. Hovering
// brightens it.
type Toggle struct {
	ui.Base
	Label    string
	OnToggle func(on bool)

	on      bool
	hovered bool
}

func NewToggle(label string, b ui.Bounds, initial bool, onToggle func(on bool)) *Toggle {
	t := &Toggle{
		Base:     ui.NewBase(b, stateCategory(initial)),
		Label:    label,
		OnToggle: onToggle,
		on:       initial,
	}
	return t
}

func (t *Toggle) On() bool { return t.on }

// SetOn changes the state without calling OnToggle.
func (t *Toggle) SetOn(on bool) {
	t.on = on
	t.restyle()
}

func (t *Toggle) HandleInput(p ui.Pointer, offset mgl32.Vec2) bool {
	if !t.Visible() {
		return false
	}
	hovered := t.IsMouseOver(p.CursorPos(), offset)
	if hovered != t.hovered {
		t.hovered = hovered
		t.restyle()
	}
	if !hovered || !p.MouseJustPressed() {
		return false
	}
	t.SetOn(!t.on)
	if t.OnToggle != nil {
		t.OnToggle(t.on)
	}
	return true
}

func (t *Toggle) restyle() {
	cat := stateCategory(t.on)
	t.SetColorCategory(cat)
	if !t.hovered {
		t.UseThemeColor()
		return
	}
	c := t.Theme().Color(cat)
	bright := c.Vec3().Mul(1.2)
	t.SetColor(mgl32.Vec4{min(bright.X(), 1), min(bright.Y(), 1), min(bright.Z(), 1), c.W()})
}

func stateCategory(on bool) ui.ColorCategory {
	if on {
		return ui.ColorSuccess
	}
	return ui.ColorError
}
