package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Action is a logical UI action, not a physical key.
type Action int

const (
	ActionClick Action = iota
	ActionSecondary
	ActionQuit
	ActionCycleTheme
	ActionCyclePacing
	ActionToggleStats
	ActionToggleVisibility
	ActionScrollModifier
	ActionCount // sentinel for array sizing
)

// InputManager maps keys and mouse buttons to actions and tracks the cursor.
// Callbacks may fire from glfw.PollEvents while other goroutines read state.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	prevState    [ActionCount]bool

	// reset each frame by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursor      mgl32.Vec2
	scrollDelta mgl32.Vec2
}

// NewInputManager creates an InputManager with the default bindings.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyEscape, ActionQuit)
	im.BindKey(glfw.KeyT, ActionCycleTheme)
	im.BindKey(glfw.KeyP, ActionCyclePacing)
	im.BindKey(glfw.KeyF3, ActionToggleStats)
	im.BindKey(glfw.KeyH, ActionToggleVisibility)
	im.BindKey(glfw.KeyLeftShift, ActionScrollModifier)
	im.BindKey(glfw.KeyRightShift, ActionScrollModifier)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionClick)
	im.BindMouseButton(glfw.MouseButtonRight, ActionSecondary)

	return im
}

// BindKey adds a binding. Several keys may share an action.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey drops every binding of key.
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

func (im *InputManager) UnbindMouseButton(button glfw.MouseButton) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.mouseButtonToActions, button)
}

// HandleKeyEvent feeds a key event. Repeats count as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.keyToActions[key]
	im.mu.RUnlock()

	if !exists {
		return
	}

	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.mouseButtonToActions[button]
	im.mu.RUnlock()

	if !exists {
		return
	}

	im.apply(actions, action == glfw.Press)
}

// apply records edges as soon as the event arrives.
func (im *InputManager) apply(actions []Action, pressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	for _, act := range actions {
		if act < 0 || act >= ActionCount {
			continue
		}
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// HandleCursorEvent records the cursor position in window coordinates.
func (im *InputManager) HandleCursorEvent(x, y float64) {
	im.mu.Lock()
	im.cursor = mgl32.Vec2{float32(x), float32(y)}
	im.mu.Unlock()
}

// HandleScrollEvent accumulates wheel movement until the next PostUpdate.
func (im *InputManager) HandleScrollEvent(dx, dy float64) {
	im.mu.Lock()
	im.scrollDelta = im.scrollDelta.Add(mgl32.Vec2{float32(dx), float32(dy)})
	im.mu.Unlock()
}

// Attach installs the key, mouse, cursor and scroll callbacks on window.
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorEvent(x, y)
	})
	window.SetScrollCallback(func(w *glfw.Window, dx, dy float64) {
		im.HandleScrollEvent(dx, dy)
	})
	im.HandleCursorEvent(window.GetCursorPos())
}

// PostUpdate ends the frame: edge flags and the scroll delta are reset.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
		im.prevState[i] = im.currentState[i]
	}
	im.scrollDelta = mgl32.Vec2{}
}

// IsActive reports whether action is held.
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed reports a press since the last PostUpdate.
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// ScrollDelta returns the wheel movement since the last PostUpdate.
func (im *InputManager) ScrollDelta() mgl32.Vec2 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.scrollDelta
}

// CursorPos returns the cursor position in window coordinates.
func (im *InputManager) CursorPos() mgl32.Vec2 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.cursor
}

// MouseDown reports whether the primary button is held.
func (im *InputManager) MouseDown() bool { return im.IsActive(ActionClick) }

// MouseJustPressed reports a primary button press this frame.
func (im *InputManager) MouseJustPressed() bool { return im.JustPressed(ActionClick) }
