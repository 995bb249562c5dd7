// Package soft renders the widget tree into CPU images. It backs headless
// runs and tests.
package soft

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Counters tallies painter calls.
type Counters struct {
	Fills      int
	Blits      int
	ClearRects int
	Clears     int
	Surfaces   int
}

// Painter draws into image.RGBA targets. The screen is the target when no
// surface is bound.
type Painter struct {
	screen  *image.RGBA
	target  *image.RGBA
	nextTex uint32

	Calls Counters
}

// New creates a painter with a w×h screen.
func New(w, h int) *Painter {
	screen := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Painter{screen: screen, target: screen}
}

// Screen returns the default target.
func (p *Painter) Screen() *image.RGBA { return p.screen }

// ClearScreen wipes the default target to c.
func (p *Painter) ClearScreen(c mgl32.Vec4) {
	draw.Draw(p.screen, p.screen.Bounds(), image.NewUniform(toNRGBA(c)), image.Point{}, draw.Src)
}

// ResetCounters zeroes Calls.
func (p *Painter) ResetCounters() { p.Calls = Counters{} }

func (p *Painter) NewSurface(w, h int) (ui.Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("new surface %dx%d: %w", w, h, ui.ErrInvalidSize)
	}
	p.nextTex++
	p.Calls.Surfaces++
	return &Surface{p: p, img: image.NewRGBA(image.Rect(0, 0, w, h)), tex: p.nextTex}, nil
}

func (p *Painter) FillQuad(u ui.Uniforms) {
	p.Calls.Fills++
	r := quadRect(u.Offset, u.Scale).Intersect(p.target.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(p.target, r, image.NewUniform(toNRGBA(u.Color)), image.Point{}, draw.Over)
}

// BlitQuad draws the window of src starting at u.Scroll over a fill of
// u.Color. Parts of the quad beyond the source content stay untouched by the
// texture.
func (p *Painter) BlitQuad(src ui.Surface, u ui.Uniforms) {
	s, ok := src.(*Surface)
	if !ok || s.img == nil {
		return
	}
	p.Calls.Blits++
	dr := quadRect(u.Offset, u.Scale)
	if u.Color.W() > 0 {
		bg := dr.Intersect(p.target.Bounds())
		draw.Draw(p.target, bg, image.NewUniform(toNRGBA(u.Color)), image.Point{}, draw.Over)
	}

	scroll := image.Pt(int(math.Round(float64(u.Scroll.X()))), int(math.Round(float64(u.Scroll.Y()))))
	sr := image.Rectangle{Min: scroll, Max: scroll.Add(dr.Size())}.Intersect(s.img.Bounds())
	if sr.Empty() {
		return
	}
	draw.Copy(p.target, dr.Min, s.img, sr, draw.Over, nil)
}

// Surface is an offscreen RGBA image.
type Surface struct {
	p    *Painter
	img  *image.RGBA
	prev []*image.RGBA
	tex  uint32
}

// Image exposes the pixels for snapshots and checks.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize surface %dx%d: %w", w, h, ui.ErrInvalidSize)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return nil
}

func (s *Surface) Bind() {
	s.prev = append(s.prev, s.p.target)
	s.p.target = s.img
}

func (s *Surface) Unbind() {
	if len(s.prev) == 0 {
		return
	}
	s.p.target = s.prev[len(s.prev)-1]
	s.prev = s.prev[:len(s.prev)-1]
}

func (s *Surface) Clear() {
	s.p.Calls.Clears++
	clear(s.img.Pix)
}

func (s *Surface) ClearRect(r image.Rectangle) {
	s.p.Calls.ClearRects++
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Texture() uint32 { return s.tex }

func (s *Surface) Destroy() {
	s.img = nil
	s.prev = nil
}

func quadRect(offset, scale mgl32.Vec2) image.Rectangle {
	x := int(math.Round(float64(offset.X())))
	y := int(math.Round(float64(offset.Y())))
	return image.Rect(x, y,
		x+int(math.Round(float64(scale.X()))),
		y+int(math.Round(float64(scale.Y()))))
}

func toNRGBA(c mgl32.Vec4) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(math.Round(float64(mgl32.Clamp(v, 0, 1)) * 255))
	}
	return color.NRGBA{R: ch(c.X()), G: ch(c.Y()), B: ch(c.Z()), A: ch(c.W())}
}
