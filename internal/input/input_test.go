package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func TestClickEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	if !im.MouseDown() || !im.MouseJustPressed() {
		t.Fatalf("press not recorded")
	}
	im.PostUpdate()
	if !im.MouseDown() {
		t.Errorf("held button lost after PostUpdate")
	}
	if im.MouseJustPressed() {
		t.Errorf("JustPressed survived PostUpdate")
	}

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Release)
	if im.MouseDown() || !im.JustReleased(ActionClick) {
		t.Errorf("release not recorded")
	}
}

func TestKeyRepeatCountsAsHeld(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyT, glfw.Press)
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyT, glfw.Repeat)
	if !im.IsActive(ActionCycleTheme) {
		t.Errorf("repeat should keep the action held")
	}
	if im.JustPressed(ActionCycleTheme) {
		t.Errorf("repeat must not produce a second press edge")
	}
}

func TestSharedActionAndUnbind(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyRightShift, glfw.Press)
	if !im.IsActive(ActionScrollModifier) {
		t.Errorf("right shift should drive the scroll modifier")
	}
	im.UnbindKey(glfw.KeyEscape)
	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if im.IsActive(ActionQuit) {
		t.Errorf("unbound key still fires")
	}
	if im.IsActive(Action(-1)) || im.JustPressed(ActionCount) {
		t.Errorf("out-of-range actions must report false")
	}
}

func TestCursorAndScroll(t *testing.T) {
	im := NewInputManager()
	im.HandleCursorEvent(12.5, 40)
	if im.CursorPos() != (mgl32.Vec2{12.5, 40}) {
		t.Errorf("cursor = %v", im.CursorPos())
	}
	im.HandleScrollEvent(0, 1)
	im.HandleScrollEvent(0, 2)
	if im.ScrollDelta() != (mgl32.Vec2{0, 3}) {
		t.Errorf("scroll = %v, want [0 3]", im.ScrollDelta())
	}
	im.PostUpdate()
	if im.ScrollDelta() != (mgl32.Vec2{}) {
		t.Errorf("scroll not reset by PostUpdate")
	}
}
