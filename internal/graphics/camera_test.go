package graphics

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProjectionTopLeftOrigin(t *testing.T) {
	p := Projection(200, 100)
	cases := []struct {
		in   mgl32.Vec2
		want mgl32.Vec2
	}{
		{mgl32.Vec2{0, 0}, mgl32.Vec2{-1, 1}},
		{mgl32.Vec2{200, 100}, mgl32.Vec2{1, -1}},
		{mgl32.Vec2{100, 50}, mgl32.Vec2{0, 0}},
	}
	for _, c := range cases {
		got := p.Mul4x1(mgl32.Vec4{c.in.X(), c.in.Y(), 0, 1}).Vec2()
		if !got.ApproxEqual(c.want) {
			t.Errorf("project %v: got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestScissorBoxFlipsAndClips(t *testing.T) {
	cases := []struct {
		name       string
		r          image.Rectangle
		x, y, w, h int32
		ok         bool
	}{
		{"inside", image.Rect(10, 20, 30, 50), 10, 30, 20, 30, true},
		{"clipped", image.Rect(90, 70, 120, 90), 90, 0, 10, 10, true},
		{"full", image.Rect(0, 0, 100, 80), 0, 0, 100, 80, true},
		{"outside", image.Rect(120, 0, 130, 10), 0, 0, 0, 0, false},
		{"empty", image.Rect(5, 5, 5, 9), 0, 0, 0, 0, false},
	}
	for _, c := range cases {
		x, y, w, h, ok := scissorBox(c.r, 100, 80)
		if ok != c.ok || x != c.x || y != c.y || w != c.w || h != c.h {
			t.Errorf("%s: got (%d,%d,%d,%d,%v)", c.name, x, y, w, h, ok)
		}
	}
}

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	for y := range 3 {
		img.Pix[y*img.Stride] = uint8(y + 1)
	}
	flipRows(img)
	for y, want := range []uint8{3, 2, 1} {
		if got := img.Pix[y*img.Stride]; got != want {
			t.Errorf("row %d: got %d, want %d", y, got, want)
		}
	}
}
