package graphics

import (
	"mini-ui/internal/profiling"
	"mini-ui/internal/ui"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	quadVertShader  = "quad.vert"
	fillFragShader  = "fill.frag"
	blitFragShader  = "blit.frag"
	textureUnitBlit = 0
)

// Renderer draws ui quads with OpenGL. It implements ui.Painter and keeps
// the stack of bound framebuffers so nested composites restore their
// parent's target.
type Renderer struct {
	fill *Shader
	blit *Shader
	quad *QuadMesh

	screenW, screenH int
	stack            []*Framebuffer
}

// NewRenderer compiles the quad shaders. A GL context must be current.
func NewRenderer(screenW, screenH int) (*Renderer, error) {
	fill, err := loadEmbeddedShader(quadVertShader, fillFragShader)
	if err != nil {
		return nil, err
	}
	blit, err := loadEmbeddedShader(quadVertShader, blitFragShader)
	if err != nil {
		fill.Delete()
		return nil, err
	}
	r := &Renderer{fill: fill, blit: blit, quad: NewQuadMesh()}
	r.SetViewport(screenW, screenH)

	blit.Use()
	blit.SetInt("uTexture", textureUnitBlit)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	CheckError("NewRenderer")
	return r, nil
}

// SetViewport records the window framebuffer size.
func (r *Renderer) SetViewport(w, h int) {
	r.screenW, r.screenH = w, h
	if len(r.stack) == 0 {
		gl.Viewport(0, 0, int32(w), int32(h))
	}
}

// BeginFrame binds the window and clears it to c.
func (r *Renderer) BeginFrame(c mgl32.Vec4) {
	if len(r.stack) != 0 {
		logger().Warn("framebuffers still bound at frame start", "depth", len(r.stack))
		r.stack = r.stack[:0]
	}
	r.bindTarget(nil)
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *Renderer) NewSurface(w, h int) (ui.Surface, error) {
	return newFramebuffer(r, w, h)
}

func (r *Renderer) FillQuad(u ui.Uniforms) {
	r.fill.Use()
	r.setCommon(r.fill, u)
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	r.quad.Draw()
	gl.Disable(gl.BLEND)
}

func (r *Renderer) BlitQuad(src ui.Surface, u ui.Uniforms) {
	defer profiling.Track("graphics.Renderer.BlitQuad")()
	fb, ok := src.(*Framebuffer)
	if !ok || fb.texture == 0 {
		logger().Warn("blit of a foreign or destroyed surface")
		return
	}
	r.blit.Use()
	r.setCommon(r.blit, u)
	r.blit.SetVector2("uScroll", u.Scroll)
	r.blit.SetVector2("uContentSize", u.ContentSize)

	gl.ActiveTexture(gl.TEXTURE0 + textureUnitBlit)
	gl.BindTexture(gl.TEXTURE_2D, fb.texture)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	r.quad.Draw()
	gl.Disable(gl.BLEND)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// setCommon maps u.ContainerSize onto the bound target, so a root laid out
// in window coordinates fills a larger HiDPI framebuffer.
func (r *Renderer) setCommon(s *Shader, u ui.Uniforms) {
	w, h := u.ContainerSize.X(), u.ContainerSize.Y()
	if w <= 0 || h <= 0 {
		tw, th := r.targetSize()
		w, h = float32(tw), float32(th)
	}
	s.SetMatrix4("uProjection", Projection(w, h))
	s.SetVector2("uOffset", u.Offset)
	s.SetVector2("uScale", u.Scale)
	s.SetVector4("uColor", u.Color)
}

func (r *Renderer) current() *Framebuffer {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Renderer) targetSize() (int, int) {
	if f := r.current(); f != nil {
		return f.w, f.h
	}
	return r.screenW, r.screenH
}

// bindTarget binds f, or the window for nil, and matches the viewport.
func (r *Renderer) bindTarget(f *Framebuffer) {
	if f == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.screenW), int32(r.screenH))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.w), int32(f.h))
}

// withTarget runs fn with f bound, then restores the stack's target.
func (r *Renderer) withTarget(f *Framebuffer, fn func()) {
	r.bindTarget(f)
	fn()
	r.bindTarget(r.current())
}

// Dispose frees the shaders and the quad mesh.
func (r *Renderer) Dispose() {
	r.fill.Delete()
	r.blit.Delete()
	r.quad.Destroy()
}
