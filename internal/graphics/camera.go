package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection maps pixel coordinates with a top-left origin onto a w×h
// target.
func Projection(w, h float32) mgl32.Mat4 {
	return mgl32.Ortho(0, w, h, 0, -1, 1)
}

// scissorBox converts a top-left based rectangle into the bottom-left based
// box glScissor expects, clipped to the target.
func scissorBox(r image.Rectangle, targetW, targetH int) (x, y, w, h int32, ok bool) {
	r = r.Intersect(image.Rect(0, 0, targetW, targetH))
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	return int32(r.Min.X), int32(targetH - r.Max.Y), int32(r.Dx()), int32(r.Dy()), true
}
