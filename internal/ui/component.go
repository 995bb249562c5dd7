package ui

import (
	"sync/atomic"
	"weak"

	"github.com/go-gl/mathgl/mgl32"
)

// DirtyFlag records how much of a component must be redrawn.
type DirtyFlag uint8

const (
	Clean DirtyFlag = iota
	ContentDirty
	// LayoutDirty implies ContentDirty.
	LayoutDirty
)

func (d DirtyFlag) String() string {
	switch d {
	case Clean:
		return "clean"
	case ContentDirty:
		return "content"
	case LayoutDirty:
		return "layout"
	}
	return "unknown"
}

// Component is a node of the widget tree. Leaf widgets embed Base; containers
// embed it through Container.
type Component interface {
	Node() *Base
	Initialize(p Painter) error
	// Update commits staged values. It reports whether the component's own
	// geometry changed so the parent can re-run its layout.
	Update() bool
	Draw(offset mgl32.Vec2)
	MarkDirty(propagate bool)
	MarkFullDirty(propagate bool)
	Destroy()

	inheritTheme(h weak.Pointer[Theme])
}

var nextID atomic.Uint64

// Base holds the state every component shares. It is usable on its own as a
// solid colored quad.
type Base struct {
	id uint64

	parent   Deferred[weak.Pointer[Container]]
	bounds   Deferred[Bounds]
	theme    Deferred[weak.Pointer[Theme]]
	category Deferred[ColorCategory]
	color    Deferred[mgl32.Vec4]
	visible  Deferred[bool]

	customColor bool
	geom        Bounds
	viewport    mgl32.Vec2
	sizeStale   bool
	dirty       DirtyFlag
	painter     Painter
}

// NewBase returns component state for embedding. The component starts
// layout-dirty so the first frame lays out and renders it.
func NewBase(b Bounds, category ColorCategory) Base {
	return Base{
		id:       nextID.Add(1),
		parent:   NewDeferred(weak.Pointer[Container]{}),
		bounds:   NewDeferred(b),
		theme:    NewDeferred(weak.Make(DefaultTheme)),
		category: NewDeferred(category),
		color:    NewDeferred(DefaultTheme.Color(category)),
		visible:  NewDeferred(true),
		geom:     b,
		dirty:    LayoutDirty,
	}
}

func (b *Base) Node() *Base             { return b }
func (b *Base) ID() uint64              { return b.id }
func (b *Base) Dirty() DirtyFlag        { return b.dirty }
func (b *Base) Visible() bool           { return b.visible.Get() }
func (b *Base) Color() mgl32.Vec4       { return b.color.Get() }
func (b *Base) Category() ColorCategory { return b.category.Get() }
func (b *Base) Bounds() Bounds          { return b.bounds.Get() }

// Scale returns the resolved pixel size.
func (b *Base) Scale() mgl32.Vec2 { return b.geom.Scale() }

// Theme returns the component's theme, falling back to DefaultTheme.
func (b *Base) Theme() *Theme { return resolveTheme(b.theme.Get()) }

// stagedTheme returns the theme a pending SetTheme will commit, or the
// current one.
func (b *Base) stagedTheme() *Theme {
	if h, ok := b.theme.Pending(); ok {
		return resolveTheme(h)
	}
	return b.Theme()
}

// Parent returns the owning container, or nil if there is none or it has
// already been collected.
func (b *Base) Parent() *Container {
	return b.parent.Get().Value()
}

func (b *Base) SetBounds(bounds Bounds)          { b.bounds.Set(bounds) }
func (b *Base) SetVisible(v bool)                { b.visible.Set(v) }
func (b *Base) SetColorCategory(c ColorCategory) { b.category.Set(c) }
func (b *Base) SetTheme(name string)             { b.theme.Set(LookupTheme(name)) }

// SetColor overrides the theme color until the next UseThemeColor.
func (b *Base) SetColor(c mgl32.Vec4) {
	b.customColor = true
	b.color.Set(c)
}

// UseThemeColor drops a SetColor override.
func (b *Base) UseThemeColor() {
	b.customColor = false
	b.color.Set(b.Theme().Color(b.category.Get()))
}

// SetViewport gives a parentless component the size percent bounds resolve
// against.
func (b *Base) SetViewport(w, h float32) {
	v := mgl32.Vec2{w, h}
	if v == b.viewport {
		return
	}
	b.viewport = v
	b.sizeStale = true
	b.MarkDirty(false)
}

func (b *Base) inheritTheme(h weak.Pointer[Theme]) {
	b.theme.Set(h)
}

// Initialize commits everything staged so far, resolves the pixel size and
// pulls theme colors.
func (b *Base) Initialize(p Painter) error {
	b.painter = p
	b.parent.Apply()
	b.bounds.Apply()
	b.theme.Apply()
	b.category.Apply()
	b.visible.Apply()
	b.color.Apply()
	if !b.customColor {
		b.color.ForceSet(b.Theme().Color(b.category.Get()))
	}
	b.sizeStale = false
	if err := b.UpdateLayout(); err != nil {
		return err
	}
	b.dirty = Clean
	return nil
}

// UpdateLayout re-resolves the pixel size against the parent's inner area,
// or the viewport for a root.
func (b *Base) UpdateLayout() error {
	scale := b.geom.scale
	b.geom = b.bounds.Get()
	b.geom.scale = scale
	if _, err := b.geom.ResolvePixelSize(b.parentInner()); err != nil {
		logger().Error("resolve bounds", "id", b.id, "err", err)
		return err
	}
	return nil
}

func (b *Base) parentInner() mgl32.Vec2 {
	if p := b.Parent(); p != nil {
		return p.innerSize()
	}
	return b.viewport
}

// containerSize is the size of the target this component draws into.
func (b *Base) containerSize() mgl32.Vec2 {
	if p := b.Parent(); p != nil {
		return p.contentSize.Get()
	}
	return b.viewport
}

// applyDeferred commits the shared cells. layout reports a geometry change,
// themed reports a theme change.
func (b *Base) applyDeferred() (layout, themed bool) {
	b.parent.Apply()
	layout = b.bounds.Apply() || b.sizeStale
	b.sizeStale = false
	themed = b.theme.Apply()
	recolor := b.category.Apply() || themed
	if recolor && !b.customColor {
		b.color.Set(b.Theme().Color(b.category.Get()))
	}
	content := b.color.Apply()
	if b.visible.Apply() {
		content = true
	}

	switch {
	case layout:
		_ = b.UpdateLayout()
		b.dirty = LayoutDirty
		b.MarkDirty(true)
	case content || recolor:
		b.MarkDirty(true)
	}
	return layout, themed
}

func (b *Base) Update() bool {
	layout, _ := b.applyDeferred()
	return layout
}

// Draw issues one quad at offset. offset already includes the placement the
// parent's layout computed.
func (b *Base) Draw(offset mgl32.Vec2) {
	if !b.visible.Get() || b.painter == nil {
		return
	}
	b.DrawQuad(offset, b.geom.Scale(), b.color.Get())
}

// DrawQuad fills a rectangle of the target b is drawn into. Widgets that
// draw more than one quad call it from their own Draw.
func (b *Base) DrawQuad(offset, size mgl32.Vec2, color mgl32.Vec4) {
	if b.painter == nil {
		return
	}
	b.painter.FillQuad(Uniforms{
		Offset:        offset,
		Scale:         size,
		ContainerSize: b.containerSize(),
		Color:         color,
	})
}

// MarkDirty flags the component for redraw. With propagate the ancestor
// chain is flagged too, so their composites get refreshed.
func (b *Base) MarkDirty(propagate bool) {
	if b.dirty < ContentDirty {
		b.dirty = ContentDirty
	}
	if !propagate {
		return
	}
	if p := b.Parent(); p != nil {
		p.MarkDirty(true)
	}
}

func (b *Base) MarkFullDirty(propagate bool) {
	b.dirty = LayoutDirty
	if !propagate {
		return
	}
	if p := b.Parent(); p != nil {
		p.MarkDirty(true)
	}
}

func (b *Base) clearDirty() {
	b.dirty = Clean
}

// IsMouseOver hit-tests the resolved box placed at offset.
func (b *Base) IsMouseOver(mouse, offset mgl32.Vec2) bool {
	return b.geom.IsHover(mouse.Sub(offset))
}

// Destroy detaches the component from its parent.
func (b *Base) Destroy() {
	b.parent.ForceSet(weak.Pointer[Container]{})
	b.painter = nil
}

// NewQuad returns a bare solid-color leaf.
func NewQuad(b Bounds, category ColorCategory) *Base {
	q := NewBase(b, category)
	return &q
}
