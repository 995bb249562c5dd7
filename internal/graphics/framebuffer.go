package graphics

import (
	"errors"
	"fmt"
	"image"

	"mini-ui/internal/ui"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrFramebufferIncomplete is returned when the driver rejects a
// framebuffer configuration.
var ErrFramebufferIncomplete = errors.New("graphics: framebuffer incomplete")

// Framebuffer is an offscreen color target backed by a texture. It
// implements ui.Surface.
type Framebuffer struct {
	r       *Renderer
	fbo     uint32
	texture uint32
	w, h    int
}

func newFramebuffer(r *Renderer, w, h int) (*Framebuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("framebuffer %dx%d: %w", w, h, ui.ErrInvalidSize)
	}
	f := &Framebuffer{r: r, w: w, h: h, texture: newColorTexture(w, h)}
	gl.GenFramebuffers(1, &f.fbo)
	if err := f.attach(); err != nil {
		f.Destroy()
		return nil, err
	}
	return f, nil
}

func (f *Framebuffer) attach() error {
	var err error
	f.r.withTarget(f, func() {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.texture, 0)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			logger().Error("framebuffer incomplete", "fbo", f.fbo, "width", f.w, "height", f.h, "status", status)
			err = fmt.Errorf("fbo %d status 0x%x: %w", f.fbo, status, ErrFramebufferIncomplete)
		}
	})
	return err
}

// Resize reallocates the color texture. The contents are undefined until
// the next Clear.
func (f *Framebuffer) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize framebuffer %dx%d: %w", w, h, ui.ErrInvalidSize)
	}
	if w == f.w && h == f.h {
		return nil
	}
	f.w, f.h = w, h
	allocateTexture(f.texture, w, h)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f.attach()
}

// Bind makes f the draw target until the matching Unbind.
func (f *Framebuffer) Bind() {
	f.r.stack = append(f.r.stack, f)
	f.r.bindTarget(f)
}

func (f *Framebuffer) Unbind() {
	s := f.r.stack
	if len(s) == 0 || s[len(s)-1] != f {
		logger().Warn("unbalanced framebuffer unbind", "fbo", f.fbo)
		return
	}
	f.r.stack = s[:len(s)-1]
	f.r.bindTarget(f.r.current())
}

func (f *Framebuffer) Clear() {
	f.r.withTarget(f, func() {
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
}

// ClearRect clears r, given with a top-left origin, to transparent.
func (f *Framebuffer) ClearRect(r image.Rectangle) {
	x, y, w, h, ok := scissorBox(r, f.w, f.h)
	if !ok {
		return
	}
	f.r.withTarget(f, func() {
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(x, y, w, h)
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.Disable(gl.SCISSOR_TEST)
	})
}

func (f *Framebuffer) Size() (int, int) { return f.w, f.h }
func (f *Framebuffer) Texture() uint32  { return f.texture }

// Snapshot reads the framebuffer back into memory.
func (f *Framebuffer) Snapshot() *image.RGBA {
	var img *image.RGBA
	f.r.withTarget(f, func() { img = readRGBA(f.w, f.h) })
	return img
}

func (f *Framebuffer) Destroy() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
