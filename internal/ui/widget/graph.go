package widget

import (
	"time"

	"mini-ui/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Graph draws a bar per recent sample, scaled so the tallest bar fills the
// widget. Bars above Budget use the error color.
type Graph struct {
	ui.Base
	Budget time.Duration

	samples []time.Duration
	head    int
	n       int
}

func NewGraph(b ui.Bounds, capacity int, budget time.Duration) *Graph {
	return &Graph{
		Base:    ui.NewBase(b, ui.ColorBackground),
		Budget:  budget,
		samples: make([]time.Duration, max(capacity, 1)),
	}
}

// Push appends a sample, dropping the oldest when full, and marks the graph
// for redraw.
func (g *Graph) Push(d time.Duration) {
	g.samples[g.head] = d
	g.head = (g.head + 1) % len(g.samples)
	g.n = min(g.n+1, len(g.samples))
	g.MarkDirty(true)
}

// Samples returns the stored samples, oldest first.
func (g *Graph) Samples() []time.Duration {
	out := make([]time.Duration, 0, g.n)
	start := (g.head - g.n + len(g.samples)) % len(g.samples)
	for i := 0; i < g.n; i++ {
		out = append(out, g.samples[(start+i)%len(g.samples)])
	}
	return out
}

func (g *Graph) Draw(offset mgl32.Vec2) {
	if !g.Visible() {
		return
	}
	size := g.Scale()
	g.DrawQuad(offset, size, g.Color())

	samples := g.Samples()
	var peak time.Duration
	for _, d := range samples {
		peak = max(peak, d)
	}
	if peak <= 0 {
		return
	}

	th := g.Theme()
	w := size.X() / float32(len(g.samples))
	for i, d := range samples {
		h := size.Y() * float32(d) / float32(peak)
		c := th.Color(ui.ColorSuccess)
		if g.Budget > 0 && d > g.Budget {
			c = th.Color(ui.ColorError)
		}
		g.DrawQuad(offset.Add(mgl32.Vec2{float32(i) * w, size.Y() - h}), mgl32.Vec2{w, h}, c)
	}
}
