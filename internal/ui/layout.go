package ui

import "github.com/go-gl/mathgl/mgl32"

// Axis is the main axis of a box layout.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// JustifyContent distributes free main-axis space between children.
type JustifyContent uint8

const (
	JustifyStart JustifyContent = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Alignment positions children on the cross axis.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// LayoutChild is what a layout needs to know about one child.
type LayoutChild struct {
	Size   mgl32.Vec2
	Anchor Anchor
}

// LayoutInput is a snapshot of the container taken before arranging.
type LayoutInput struct {
	Size     mgl32.Vec2
	Padding  float32
	Spacing  float32
	Justify  JustifyContent
	Align    Alignment
	Children []LayoutChild
}

// Layout places children inside a container. It returns one rectangle per
// child, relative to the composite target, and the content size.
type Layout interface {
	Arrange(in LayoutInput) ([]Rect, mgl32.Vec2)
}

var (
	// AnchorLayout puts every child in the padded area at its own anchor.
	AnchorLayout Layout = anchorLayout{}
	// RowLayout stacks children left to right.
	RowLayout Layout = boxLayout{axis: Horizontal}
	// ColumnLayout stacks children top to bottom.
	ColumnLayout Layout = boxLayout{axis: Vertical}
)

type anchorLayout struct{}

func (anchorLayout) Arrange(in LayoutInput) ([]Rect, mgl32.Vec2) {
	content := in.Size
	for _, ch := range in.Children {
		for i := 0; i < 2; i++ {
			content[i] = max(content[i], ch.Size[i]+2*in.Padding)
		}
	}
	inner := mgl32.Vec2{content.X() - 2*in.Padding, content.Y() - 2*in.Padding}

	rects := make([]Rect, len(in.Children))
	for i, ch := range in.Children {
		b := Bounds{Anchor: ch.Anchor, scale: ch.Size}
		off := b.AnchorOffset(inner)
		rects[i] = Rect{
			X: in.Padding + off.X(),
			Y: in.Padding + off.Y(),
			W: ch.Size.X(),
			H: ch.Size.Y(),
		}
	}
	return rects, content
}

type boxLayout struct {
	axis Axis
}

// Arrange measures the children along the axis, then places them. The free
// space justify distributes is what remains after padding, child sizes and
// the (n-1) spacing gaps, so END and CENTER never push the last child past
// the far padding.
func (l boxLayout) Arrange(in LayoutInput) ([]Rect, mgl32.Vec2) {
	main, cross := 0, 1
	if l.axis == Vertical {
		main, cross = 1, 0
	}

	n := len(in.Children)
	var sum, crossMax float32
	for _, ch := range in.Children {
		sum += ch.Size[main]
		crossMax = max(crossMax, ch.Size[cross])
	}
	extent := sum
	if n > 1 {
		extent += float32(n-1) * in.Spacing
	}

	var content mgl32.Vec2
	content[main] = max(extent+2*in.Padding, in.Size[main])
	content[cross] = max(crossMax+2*in.Padding, in.Size[cross])

	start, gap := in.Padding, in.Spacing
	if free := content[main] - (2*in.Padding + extent); free > 0 {
		switch in.Justify {
		case JustifyCenter:
			start += free / 2
		case JustifyEnd:
			start += free
		case JustifySpaceBetween:
			if n > 1 {
				gap += free / float32(n-1)
			}
		case JustifySpaceAround:
			if n > 0 {
				start += free / float32(n) / 2
				gap += free / float32(n)
			}
		}
	}

	crossInner := content[cross] - 2*in.Padding
	rects := make([]Rect, n)
	cursor := start
	for i, ch := range in.Children {
		var pos mgl32.Vec2
		pos[main] = cursor
		pos[cross] = in.Padding + alignOffset(in.Align, crossInner, ch.Size[cross])
		rects[i] = Rect{X: pos.X(), Y: pos.Y(), W: ch.Size.X(), H: ch.Size.Y()}
		cursor += ch.Size[main] + gap
	}
	return rects, content
}

func alignOffset(a Alignment, space, size float32) float32 {
	switch a {
	case AlignCenter:
		return (space - size) / 2
	case AlignEnd:
		return space - size
	default:
		return 0
	}
}
