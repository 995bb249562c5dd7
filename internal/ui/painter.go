package ui

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms are the per-quad parameters shared by every draw.
type Uniforms struct {
	// Offset is the top-left of the quad in the bound target, in pixels.
	Offset mgl32.Vec2
	// Scale is the quad size in pixels.
	Scale mgl32.Vec2
	// ContainerSize is the size of the bound target.
	ContainerSize mgl32.Vec2
	Color         mgl32.Vec4

	// Scroll and ContentSize select the sampled window of a textured quad.
	Scroll      mgl32.Vec2
	ContentSize mgl32.Vec2
}

// Surface is an offscreen color buffer. Bind redirects subsequent draws into
// it until the matching Unbind, which restores the previous target.
type Surface interface {
	Resize(w, h int) error
	Bind()
	Unbind()
	Clear()
	ClearRect(r image.Rectangle)
	Size() (int, int)
	Texture() uint32
	Destroy()
}

// Painter issues quad draws into the currently bound target.
type Painter interface {
	NewSurface(w, h int) (Surface, error)
	FillQuad(u Uniforms)
	BlitQuad(src Surface, u Uniforms)
}

// Pointer is the input state the widget tree consumes.
type Pointer interface {
	CursorPos() mgl32.Vec2
	MouseDown() bool
	MouseJustPressed() bool
}

// Interactive is implemented by components that react to the pointer.
// offset is the component's top-left in the pointer's coordinate space.
// It reports whether the event was consumed.
type Interactive interface {
	HandleInput(p Pointer, offset mgl32.Vec2) bool
}
