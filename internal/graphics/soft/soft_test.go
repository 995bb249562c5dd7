package soft

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

var red = mgl32.Vec4{1, 0, 0, 1}

func TestFillQuadClipsToTarget(t *testing.T) {
	p := New(8, 8)
	p.FillQuad(ui.Uniforms{Offset: mgl32.Vec2{6, 6}, Scale: mgl32.Vec2{4, 4}, Color: red})
	if got := p.Screen().RGBAAt(7, 7); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("inside pixel: got %v", got)
	}
	if got := p.Screen().RGBAAt(5, 5); got.A != 0 {
		t.Fatalf("outside pixel touched: %v", got)
	}
	if p.Calls.Fills != 1 {
		t.Fatalf("fills = %d", p.Calls.Fills)
	}
}

func TestBindRestoresPreviousTarget(t *testing.T) {
	p := New(4, 4)
	outer, _ := p.NewSurface(4, 4)
	inner, _ := p.NewSurface(2, 2)

	outer.Bind()
	inner.Bind()
	p.FillQuad(ui.Uniforms{Scale: mgl32.Vec2{2, 2}, Color: red})
	inner.Unbind()
	p.FillQuad(ui.Uniforms{Offset: mgl32.Vec2{3, 3}, Scale: mgl32.Vec2{1, 1}, Color: red})
	outer.Unbind()

	if got := inner.(*Surface).Image().RGBAAt(1, 1); got.R != 255 {
		t.Fatalf("inner not drawn: %v", got)
	}
	if got := outer.(*Surface).Image().RGBAAt(3, 3); got.R != 255 {
		t.Fatalf("outer not drawn after inner unbind: %v", got)
	}
	if got := p.Screen().RGBAAt(3, 3); got.A != 0 {
		t.Fatalf("screen drawn while surfaces bound: %v", got)
	}
}

func TestBlitQuadScrollWindow(t *testing.T) {
	p := New(4, 4)
	src, _ := p.NewSurface(8, 4)
	src.Bind()
	p.FillQuad(ui.Uniforms{Offset: mgl32.Vec2{4, 0}, Scale: mgl32.Vec2{4, 4}, Color: red})
	src.Unbind()

	p.BlitQuad(src, ui.Uniforms{Scale: mgl32.Vec2{4, 4}, Scroll: mgl32.Vec2{4, 0}})
	if got := p.Screen().RGBAAt(0, 0); got.R != 255 {
		t.Fatalf("scrolled window not sampled: %v", got)
	}
	if p.Calls.Blits != 1 {
		t.Fatalf("blits = %d", p.Calls.Blits)
	}
}

func TestClearRect(t *testing.T) {
	p := New(4, 4)
	s, _ := p.NewSurface(4, 4)
	s.Bind()
	p.FillQuad(ui.Uniforms{Scale: mgl32.Vec2{4, 4}, Color: red})
	s.Unbind()
	s.ClearRect(image.Rect(0, 0, 2, 4))

	img := s.(*Surface).Image()
	if img.RGBAAt(1, 1).A != 0 || img.RGBAAt(2, 1).A != 255 {
		t.Fatalf("clear rect: left %v right %v", img.RGBAAt(1, 1), img.RGBAAt(2, 1))
	}
	if p.Calls.ClearRects != 1 {
		t.Fatalf("clear rects = %d", p.Calls.ClearRects)
	}
}

func TestInvalidSizes(t *testing.T) {
	p := New(1, 1)
	if _, err := p.NewSurface(0, 3); !errors.Is(err, ui.ErrInvalidSize) {
		t.Fatalf("NewSurface: %v", err)
	}
	s, _ := p.NewSurface(1, 1)
	if err := s.Resize(-1, 1); !errors.Is(err, ui.ErrInvalidSize) {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := s.Size(); w != 1 || h != 1 {
		t.Fatalf("size changed after failed resize: %dx%d", w, h)
	}
}
