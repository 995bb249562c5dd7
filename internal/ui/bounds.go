package ui

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrPercentWithoutParent is returned when a percent dimension is
	// resolved against a non-positive parent size.
	ErrPercentWithoutParent = errors.New("ui: percent size needs a positive parent size")
	// ErrInvalidSize is returned for zero or negative target dimensions.
	ErrInvalidSize = errors.New("ui: invalid size")
	// ErrIndexOutOfRange is returned by indexed child access past the end.
	ErrIndexOutOfRange = errors.New("ui: index out of range")
	// ErrNoSurface is returned when drawing a container whose composite
	// target was never allocated.
	ErrNoSurface = errors.New("ui: composite target not allocated")
)

// Unit tags a Value as pixels or a percentage of the parent.
type Unit uint8

const (
	Pixel Unit = iota
	Percent
)

// Value is a single dimension.
type Value struct {
	Magnitude float64
	Unit      Unit
}

// Px returns a pixel value.
func Px(v float64) Value { return Value{Magnitude: v, Unit: Pixel} }

// Pct returns a percent value, 100 meaning the whole parent.
func Pct(v float64) Value { return Value{Magnitude: v, Unit: Percent} }

// Resolve converts the value to pixels against parent.
func (v Value) Resolve(parent float32) (float32, error) {
	if v.Unit == Pixel {
		return float32(v.Magnitude), nil
	}
	if parent <= 0 {
		return 0, ErrPercentWithoutParent
	}
	return float32(float64(parent) * v.Magnitude / 100), nil
}

// Anchor selects one of nine placements of a box inside its container.
type Anchor uint8

const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	CenterLeft
	Center
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight
)

// Bounds is the requested geometry of a component plus its last resolved
// pixel size.
type Bounds struct {
	Width  Value
	Height Value
	Anchor Anchor

	scale mgl32.Vec2
}

// PixelBounds is shorthand for a fixed-size, top-left anchored box.
func PixelBounds(w, h float64) Bounds {
	return Bounds{Width: Px(w), Height: Px(h)}
}

// PercentBounds is shorthand for a box sized relative to its parent.
func PercentBounds(w, h float64) Bounds {
	return Bounds{Width: Pct(w), Height: Pct(h)}
}

// WithAnchor returns a copy anchored at a.
func (b Bounds) WithAnchor(a Anchor) Bounds {
	b.Anchor = a
	return b
}

// Scale returns the last resolved pixel size.
func (b *Bounds) Scale() mgl32.Vec2 {
	return b.scale
}

// NeedsParent reports whether either dimension is percent based.
func (b *Bounds) NeedsParent() bool {
	return b.Width.Unit == Percent || b.Height.Unit == Percent
}

// ResolvePixelSize resolves both dimensions against parent and stores the
// result. On error the previous size is kept.
func (b *Bounds) ResolvePixelSize(parent mgl32.Vec2) (mgl32.Vec2, error) {
	w, err := b.Width.Resolve(parent.X())
	if err != nil {
		return b.scale, fmt.Errorf("resolve width against %v: %w", parent, err)
	}
	h, err := b.Height.Resolve(parent.Y())
	if err != nil {
		return b.scale, fmt.Errorf("resolve height against %v: %w", parent, err)
	}
	b.scale = mgl32.Vec2{w, h}
	return b.scale, nil
}

// AnchorOffset places the resolved box inside containerSize.
func (b *Bounds) AnchorOffset(containerSize mgl32.Vec2) mgl32.Vec2 {
	col := int(b.Anchor) % 3
	row := int(b.Anchor) / 3
	return mgl32.Vec2{
		anchorAxis(col, containerSize.X(), b.scale.X()),
		anchorAxis(row, containerSize.Y(), b.scale.Y()),
	}
}

func anchorAxis(slot int, container, size float32) float32 {
	switch slot {
	case 1:
		return (container - size) / 2
	case 2:
		return container - size
	default:
		return 0
	}
}

// IsHover tests a position local to the box. The min edge is inclusive and
// the max edge exclusive, so adjacent boxes never share a pixel.
func (b *Bounds) IsHover(local mgl32.Vec2) bool {
	return local.X() >= 0 && local.Y() >= 0 &&
		local.X() < b.scale.X() && local.Y() < b.scale.Y()
}

// Rect is a placement relative to a container's composite target.
type Rect struct {
	X, Y, W, H float32
}

// Min returns the top-left corner.
func (r Rect) Min() mgl32.Vec2 { return mgl32.Vec2{r.X, r.Y} }

// Size returns the width and height.
func (r Rect) Size() mgl32.Vec2 { return mgl32.Vec2{r.W, r.H} }

// Pixels rounds the rectangle outwards to whole pixels.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.X))),
		int(math.Floor(float64(r.Y))),
		int(math.Ceil(float64(r.X+r.W))),
		int(math.Ceil(float64(r.Y+r.H))),
	)
}
