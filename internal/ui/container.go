package ui

import (
	"fmt"
	"image"
	"math"
	"slices"
	"weak"

	"mini-ui/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderStats counts the work done by the last RenderChildren pass.
type RenderStats struct {
	Draws  int // child Draw calls on visible children
	Clears int // scissored clears
}

type childSlot struct {
	comp     Component
	rect     Rect
	drawn    image.Rectangle
	hasDrawn bool
}

// Container owns its children and composites them into an offscreen target
// that its parent draws as a single textured quad. Only dirty children are
// redrawn into the target.
type Container struct {
	Base

	layout  Layout
	slots   []childSlot
	surface Surface

	padding     Deferred[float32]
	spacing     Deferred[float32]
	scroll      Deferred[mgl32.Vec2]
	contentSize Deferred[mgl32.Vec2]
	justify     Deferred[JustifyContent]
	align       Deferred[Alignment]

	needsLayout  bool
	themeMetrics bool
	stats        RenderStats
}

// NewContainer creates a container that places children by their anchors.
func NewContainer(b Bounds) *Container {
	return NewContainerWithLayout(b, AnchorLayout)
}

// NewHBox creates a row container.
func NewHBox(b Bounds) *Container {
	return NewContainerWithLayout(b, RowLayout)
}

// NewVBox creates a column container.
func NewVBox(b Bounds) *Container {
	return NewContainerWithLayout(b, ColumnLayout)
}

// NewContainerWithLayout creates a container arranged by l.
func NewContainerWithLayout(b Bounds, l Layout) *Container {
	if l == nil {
		l = AnchorLayout
	}
	return &Container{
		Base:        NewBase(b, ColorBackground),
		layout:      l,
		padding:     NewDeferred[float32](0),
		spacing:     NewDeferred[float32](0),
		scroll:      NewDeferred(mgl32.Vec2{}),
		contentSize: NewDeferred(mgl32.Vec2{}),
		justify:     NewDeferred(JustifyStart),
		align:       NewDeferred(AlignStart),
		needsLayout: true,
	}
}

// Add appends child to c and returns it with its concrete type.
func Add[T Component](c *Container, child T) T {
	c.AddChild(child)
	return child
}

// SetPadding sets an explicit padding. It stops UseThemeMetrics tracking.
func (c *Container) SetPadding(p float32) {
	c.themeMetrics = false
	c.padding.Set(max(p, 0))
}

// SetSpacing sets an explicit spacing. It stops UseThemeMetrics tracking.
func (c *Container) SetSpacing(s float32) {
	c.themeMetrics = false
	c.spacing.Set(max(s, 0))
}

// UseThemeMetrics makes padding and spacing follow the theme, including
// later theme changes, until the next SetPadding or SetSpacing.
func (c *Container) UseThemeMetrics() {
	c.themeMetrics = true
	c.stageThemeMetrics(c.stagedTheme())
}

func (c *Container) stageThemeMetrics(t *Theme) {
	c.padding.Set(max(t.Padding(), 0))
	c.spacing.Set(max(t.Spacing(), 0))
}

func (c *Container) SetScroll(v mgl32.Vec2)             { c.scroll.Set(v) }
func (c *Container) SetJustifyContent(j JustifyContent) { c.justify.Set(j) }
func (c *Container) SetChildAlignment(a Alignment)      { c.align.Set(a) }

func (c *Container) Padding() float32        { return c.padding.Get() }
func (c *Container) Spacing() float32        { return c.spacing.Get() }
func (c *Container) Scroll() mgl32.Vec2      { return c.scroll.Get() }
func (c *Container) ContentSize() mgl32.Vec2 { return c.contentSize.Get() }
func (c *Container) Surface() Surface        { return c.surface }
func (c *Container) LastRender() RenderStats { return c.stats }
func (c *Container) Len() int                { return len(c.slots) }
func (c *Container) Node() *Base             { return &c.Base }

// AddChild appends child, points its parent link at c and hands it c's
// theme. A child added after Initialize is initialized on the spot.
func (c *Container) AddChild(child Component) {
	n := child.Node()
	if old := n.Parent(); old != nil && old != c {
		old.RemoveChild(child)
	}
	n.parent.ForceSet(weak.Make(c))
	child.inheritTheme(c.theme.Get())
	c.slots = append(c.slots, childSlot{comp: child})
	c.needsLayout = true
	if c.painter != nil {
		if err := child.Initialize(c.painter); err != nil {
			logger().Warn("initialize added child", "container", c.id, "child", n.id, "err", err)
		}
		child.MarkFullDirty(false)
	}
	c.MarkDirty(true)
}

// RemoveChild detaches child. It reports whether child was found.
func (c *Container) RemoveChild(child Component) bool {
	for i := range c.slots {
		if c.slots[i].comp == child {
			_ = c.RemoveChildAt(i)
			return true
		}
	}
	return false
}

// RemoveChildAt detaches the child at index i.
func (c *Container) RemoveChildAt(i int) error {
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("remove child %d of %d: %w", i, len(c.slots), ErrIndexOutOfRange)
	}
	child := c.slots[i].comp
	if s := c.slots[i]; s.hasDrawn && c.surface != nil {
		c.surface.ClearRect(s.drawn)
	}
	c.slots = slices.Delete(c.slots, i, i+1)
	child.Node().parent.ForceSet(weak.Pointer[Container]{})
	c.needsLayout = true
	c.MarkDirty(true)
	return nil
}

// Child returns the child at index i.
func (c *Container) Child(i int) (Component, error) {
	if i < 0 || i >= len(c.slots) {
		return nil, fmt.Errorf("child %d of %d: %w", i, len(c.slots), ErrIndexOutOfRange)
	}
	return c.slots[i].comp, nil
}

// Children returns the children in draw order.
func (c *Container) Children() []Component {
	out := make([]Component, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.comp
	}
	return out
}

// Placement returns the cached rectangle of child i inside the composite
// target.
func (c *Container) Placement(i int) (Rect, error) {
	if i < 0 || i >= len(c.slots) {
		return Rect{}, fmt.Errorf("placement %d of %d: %w", i, len(c.slots), ErrIndexOutOfRange)
	}
	return c.slots[i].rect, nil
}

func (c *Container) innerSize() mgl32.Vec2 {
	s := c.geom.Scale()
	p := c.padding.Get()
	return mgl32.Vec2{max(s.X()-2*p, 0), max(s.Y()-2*p, 0)}
}

// Initialize initializes c, then every child, lays the children out and
// allocates the composite target.
func (c *Container) Initialize(p Painter) error {
	err := c.Base.Initialize(p)
	if c.themeMetrics {
		c.stageThemeMetrics(c.Theme())
	}
	c.padding.Apply()
	c.spacing.Apply()
	c.scroll.Apply()
	c.justify.Apply()
	c.align.Apply()
	if err != nil {
		return err
	}

	var firstErr error
	h := c.theme.Get()
	for _, s := range c.slots {
		s.comp.inheritTheme(h)
		if err := s.comp.Initialize(p); err != nil {
			logger().Warn("initialize child", "container", c.id, "child", s.comp.Node().id, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	c.RecalculateChildBounds()
	c.contentSize.Apply()
	if err := c.allocateSurface(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.MarkFullDirty(false)
	return firstErr
}

// Update commits c's own cells, then every child's, and re-runs the layout
// when any geometry changed.
func (c *Container) Update() bool {
	relayout := c.needsLayout
	if c.padding.Apply() {
		relayout = true
	}
	if c.spacing.Apply() {
		relayout = true
	}
	if c.justify.Apply() {
		relayout = true
	}
	if c.align.Apply() {
		relayout = true
	}
	if c.scroll.Apply() {
		c.MarkDirty(true)
	}

	resized, themed := c.applyDeferred()
	if themed {
		if c.themeMetrics {
			c.stageThemeMetrics(c.Theme())
			if c.padding.Apply() {
				relayout = true
			}
			if c.spacing.Apply() {
				relayout = true
			}
		}
		h := c.theme.Get()
		for _, s := range c.slots {
			s.comp.inheritTheme(h)
		}
	}
	if resized || relayout {
		for _, s := range c.slots {
			if s.comp.Node().geom.NeedsParent() {
				s.comp.Node().sizeStale = true
			}
		}
	}

	for _, s := range c.slots {
		if s.comp.Update() {
			relayout = true
		}
	}

	if relayout || resized {
		if c.RecalculateChildBounds() {
			c.MarkFullDirty(true)
		}
	}
	if c.contentSize.Apply() {
		if c.allocateSurface() == nil {
			c.MarkFullDirty(true)
		}
	}
	return resized
}

// RecalculateChildBounds runs the layout and caches each child's rectangle.
// The content size is staged, not committed. It reports whether any
// placement moved.
func (c *Container) RecalculateChildBounds() bool {
	defer profiling.Track("ui.Container.RecalculateChildBounds")()

	in := LayoutInput{
		Size:     c.geom.Scale(),
		Padding:  c.padding.Get(),
		Spacing:  c.spacing.Get(),
		Justify:  c.justify.Get(),
		Align:    c.align.Get(),
		Children: make([]LayoutChild, len(c.slots)),
	}
	for i, s := range c.slots {
		n := s.comp.Node()
		in.Children[i] = LayoutChild{Size: n.Scale(), Anchor: n.geom.Anchor}
	}

	rects, content := c.layout.Arrange(in)
	moved := false
	for i := range c.slots {
		if c.slots[i].rect != rects[i] {
			c.slots[i].rect = rects[i]
			moved = true
		}
	}
	c.contentSize.Set(content)
	c.needsLayout = false
	return moved
}

func (c *Container) allocateSurface() error {
	size := c.contentSize.Get()
	w := int(math.Round(float64(size.X())))
	h := int(math.Round(float64(size.Y())))
	if w <= 0 || h <= 0 {
		logger().Warn("composite target not allocated", "container", c.id, "width", w, "height", h)
		return fmt.Errorf("composite target %dx%d: %w", w, h, ErrInvalidSize)
	}
	if c.painter == nil {
		return nil
	}

	if c.surface == nil {
		s, err := c.painter.NewSurface(w, h)
		if err != nil {
			logger().Error("allocate composite target", "container", c.id, "err", err)
			return err
		}
		c.surface = s
	} else if sw, sh := c.surface.Size(); sw != w || sh != h {
		if err := c.surface.Resize(w, h); err != nil {
			logger().Error("resize composite target", "container", c.id, "err", err)
			return err
		}
	}
	c.surface.Clear()
	for i := range c.slots {
		c.slots[i].hasDrawn = false
	}
	return nil
}

// RenderChildren redraws every dirty child into the composite target. Each
// redrawn child's previous rectangle is cleared first; clean siblings keep
// their pixels.
func (c *Container) RenderChildren() error {
	defer profiling.Track("ui.Container.RenderChildren")()

	c.stats = RenderStats{}
	if c.surface == nil {
		logger().Error("render children", "container", c.id, "err", ErrNoSurface)
		return ErrNoSurface
	}

	c.surface.Bind()
	defer c.surface.Unbind()

	for i := range c.slots {
		s := &c.slots[i]
		n := s.comp.Node()
		if n.dirty == Clean {
			continue
		}
		r := s.rect.Pixels()
		if s.hasDrawn && s.drawn != r {
			c.surface.ClearRect(s.drawn)
			c.stats.Clears++
		}
		c.surface.ClearRect(r)
		c.stats.Clears++
		if n.Visible() {
			s.comp.Draw(s.rect.Min())
			c.stats.Draws++
		}
		n.clearDirty()
		s.drawn, s.hasDrawn = r, true
	}
	return nil
}

// Draw refreshes the composite target and draws it at offset.
func (c *Container) Draw(offset mgl32.Vec2) {
	if !c.visible.Get() || c.painter == nil {
		return
	}
	if err := c.RenderChildren(); err != nil {
		return
	}
	c.painter.BlitQuad(c.surface, Uniforms{
		Offset:        offset,
		Scale:         c.geom.Scale(),
		ContainerSize: c.containerSize(),
		Color:         c.color.Get(),
		Scroll:        c.clampedScroll(),
		ContentSize:   c.contentSize.Get(),
	})
	c.clearDirty()
}

func (c *Container) clampedScroll() mgl32.Vec2 {
	s := c.scroll.Get()
	content := c.contentSize.Get()
	view := c.geom.Scale()
	for i := 0; i < 2; i++ {
		s[i] = mgl32.Clamp(s[i], 0, max(content[i]-view[i], 0))
	}
	return s
}

// MarkFullDirty flags c and every child for a full redraw and wipes the
// composite target. Children are flagged without propagating.
func (c *Container) MarkFullDirty(propagate bool) {
	c.dirty = LayoutDirty
	for i := range c.slots {
		c.slots[i].comp.Node().dirty = LayoutDirty
		c.slots[i].hasDrawn = false
	}
	if c.surface != nil {
		c.surface.Clear()
	}
	if propagate {
		if p := c.Parent(); p != nil {
			p.MarkDirty(true)
		}
	}
}

// HandleInput forwards the pointer to interactive children, front to back.
// Children outside the visible area see the pointer as absent.
func (c *Container) HandleInput(p Pointer, offset mgl32.Vec2) bool {
	if !c.visible.Get() {
		return false
	}
	if !c.IsMouseOver(p.CursorPos(), offset) {
		p = absentPointer{}
	}
	origin := offset.Sub(c.clampedScroll())
	consumed := false
	for i := len(c.slots) - 1; i >= 0; i-- {
		ic, ok := c.slots[i].comp.(Interactive)
		if !ok {
			continue
		}
		if ic.HandleInput(p, origin.Add(c.slots[i].rect.Min())) {
			consumed = true
			p = absentPointer{}
		}
	}
	return consumed
}

// Destroy releases the composite target and destroys every child.
func (c *Container) Destroy() {
	for _, s := range c.slots {
		s.comp.Destroy()
	}
	c.slots = nil
	if c.surface != nil {
		c.surface.Destroy()
		c.surface = nil
	}
	c.Base.Destroy()
}

type absentPointer struct{}

func (absentPointer) CursorPos() mgl32.Vec2  { return mgl32.Vec2{-math.MaxFloat32, -math.MaxFloat32} }
func (absentPointer) MouseDown() bool        { return false }
func (absentPointer) MouseJustPressed() bool { return false }
