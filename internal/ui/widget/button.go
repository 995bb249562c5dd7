package widget

import (
	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Button is a clickable quad. Its color follows the hover and press state.
type Button struct {
	ui.Base
	Label   string
	OnClick func()

	hovered  bool
	pressed  bool
	disabled bool
}

func NewButton(label string, b ui.Bounds, onClick func()) *Button {
	return &Button{
		Base:    ui.NewBase(b, ui.ColorPrimary),
		Label:   label,
		OnClick: onClick,
	}
}

func (b *Button) Hovered() bool { return b.hovered }
func (b *Button) Enabled() bool { return !b.disabled }

// SetEnabled greys the button out and makes it ignore input.
func (b *Button) SetEnabled(on bool) {
	b.disabled = !on
	if b.disabled {
		b.hovered, b.pressed = false, false
	}
	b.restyle()
}

// Click runs OnClick as if the button had been pressed.
func (b *Button) Click() {
	if b.disabled || b.OnClick == nil {
		return
	}
	b.OnClick()
}

func (b *Button) HandleInput(p ui.Pointer, offset mgl32.Vec2) bool {
	if !b.Visible() || b.disabled {
		return false
	}
	hovered := b.IsMouseOver(p.CursorPos(), offset)
	pressed := hovered && p.MouseDown()
	if hovered != b.hovered || pressed != b.pressed {
		b.hovered, b.pressed = hovered, pressed
		b.restyle()
	}
	if hovered && p.MouseJustPressed() {
		b.Click()
		return true
	}
	return false
}

func (b *Button) restyle() {
	switch {
	case b.disabled:
		b.SetColorCategory(ui.ColorDisabled)
	case b.pressed:
		b.SetColorCategory(ui.ColorPressed)
	case b.hovered:
		b.SetColorCategory(ui.ColorHover)
	default:
		b.SetColorCategory(ui.ColorPrimary)
	}
}
