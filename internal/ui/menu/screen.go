package menu

import (
	"time"

	"mini-ui/internal/pacing"
	"mini-ui/internal/ui"
	"mini-ui/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	tileCount = 24
	tileSize  = 32
)

// Screen is the demo scene: a pacing-mode indicator row, a scrollable strip
// of tiles recolored one per frame, the settings panel and a frame-time
// graph.
type Screen struct {
	Root     *ui.Container
	Lamps    *ui.Container
	Tiles    *ui.Container
	Graph    *widget.Graph
	Settings *Settings

	lamps [4]*ui.Base
	tiles []*ui.Base
}

// NewScreen builds the scene for a w×h viewport.
func NewScreen(w, h float32, theme string) *Screen {
	s := &Screen{Root: ui.NewVBox(ui.PercentBounds(100, 100))}
	s.Root.SetViewport(w, h)
	s.Root.SetTheme(theme)
	s.Root.SetChildAlignment(ui.AlignCenter)
	s.Root.UseThemeMetrics()

	s.Lamps = ui.Add(s.Root, ui.NewHBox(ui.Bounds{Width: ui.Pct(100), Height: ui.Px(24)}))
	s.Lamps.SetSpacing(8)
	s.Lamps.SetJustifyContent(ui.JustifyCenter)
	s.Lamps.SetChildAlignment(ui.AlignCenter)
	for i := range s.lamps {
		s.lamps[i] = ui.Add(s.Lamps, ui.NewQuad(ui.PixelBounds(48, 16), ui.ColorDisabled))
	}

	s.Tiles = ui.Add(s.Root, ui.NewHBox(ui.Bounds{Width: ui.Pct(100), Height: ui.Px(tileSize + 8)}))
	s.Tiles.SetPadding(4)
	s.Tiles.SetSpacing(4)
	s.Tiles.SetJustifyContent(ui.JustifySpaceAround)
	for range tileCount {
		s.tiles = append(s.tiles, ui.Add(s.Tiles, ui.NewQuad(ui.PixelBounds(tileSize, tileSize), ui.ColorPrimary)))
	}

	s.Settings = NewSettings(theme)
	s.Root.AddChild(s.Settings.Panel)

	s.Graph = ui.Add(s.Root, widget.NewGraph(ui.Bounds{Width: ui.Pct(100), Height: ui.Px(60)}, 120, time.Second/60))
	return s
}

func (s *Screen) Initialize(p ui.Painter) error { return s.Root.Initialize(p) }

// Update dispatches the pointer, commits the frame's changes and returns the
// action a click asked for.
func (s *Screen) Update(p ui.Pointer) Action {
	s.Settings.Sync()
	s.Root.HandleInput(p, mgl32.Vec2{})
	s.Root.Update()
	return s.Settings.take()
}

func (s *Screen) Draw() { s.Root.Draw(mgl32.Vec2{}) }

func (s *Screen) Resize(w, h float32) { s.Root.SetViewport(w, h) }

func (s *Screen) SetTheme(name string) { s.Root.SetTheme(name) }

// SetPacingMode lights the lamp of m.
func (s *Screen) SetPacingMode(m pacing.Mode) {
	for i, l := range s.lamps {
		if pacing.Mode(i) == m {
			l.SetColorCategory(ui.ColorSuccess)
		} else {
			l.SetColorCategory(ui.ColorDisabled)
		}
	}
}

// Animate recolors the tile for frame. Only that tile is redrawn.
func (s *Screen) Animate(frame int) {
	i := frame % len(s.tiles)
	hue := float64(frame*7%360) + 0.5
	c := colorful.Hsv(hue, 0.55, 0.85)
	s.tiles[i].SetColor(mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1})
}

// ScrollTiles moves the tile strip by delta pixels.
func (s *Screen) ScrollTiles(delta float32) {
	sc := s.Tiles.Scroll()
	limit := max(s.Tiles.ContentSize().X()-s.Tiles.Scale().X(), 0)
	s.Tiles.SetScroll(mgl32.Vec2{mgl32.Clamp(sc.X()+delta, 0, limit), 0})
}

// PushFrameTime feeds the frame-time graph.
func (s *Screen) PushFrameTime(d time.Duration) { s.Graph.Push(d) }

func (s *Screen) Destroy() { s.Root.Destroy() }
