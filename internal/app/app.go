package app

import (
	"log/slog"
	"slices"
	"time"

	"mini-ui/internal/config"
	"mini-ui/internal/graphics"
	"mini-ui/internal/input"
	"mini-ui/internal/pacing"
	"mini-ui/internal/profiling"
	"mini-ui/internal/ui"
	"mini-ui/internal/ui/menu"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// statInterval is how often the pacer's statistics are refreshed.
const statInterval = 500 * time.Millisecond

// App owns the window, the widget tree and the frame pacer. All of its
// methods run on the thread that created the GL context.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	renderer     *graphics.Renderer
	screen       *menu.Screen
	pacer        *pacing.FrameCounter
	log          *slog.Logger

	theme    string
	vsync    bool
	frame    int
	lastStat time.Time
}

// NewApp builds the demo screen for window. The GL context must be current.
func NewApp(window *glfw.Window, im *input.InputManager, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	fbW, fbH := window.GetFramebufferSize()
	r, err := graphics.NewRenderer(fbW, fbH)
	if err != nil {
		return nil, err
	}

	w, h := window.GetSize()
	theme := config.GetThemeName()
	screen := menu.NewScreen(float32(w), float32(h), theme)
	if err := screen.Initialize(r); err != nil {
		r.Dispose()
		return nil, err
	}

	pacer := pacing.New(config.PacingOptions())
	screen.SetPacingMode(pacer.Mode())

	a := &App{
		window:       window,
		inputManager: im,
		renderer:     r,
		screen:       screen,
		pacer:        pacer,
		log:          log,
		theme:        theme,
		vsync:        config.GetVSync(),
		lastStat:     time.Now(),
	}
	glfw.SwapInterval(swapInterval(a.vsync))
	a.attach()
	return a, nil
}

func (a *App) attach() {
	a.inputManager.Attach(a.window)

	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		a.renderer.SetViewport(fbWidth, fbHeight)
		// Layout uses window coordinates, like the cursor.
		winW, winH := w.GetSize()
		if winW > 0 && winH > 0 {
			a.screen.Resize(float32(winW), float32(winH))
		}
	})
	a.window.SetRefreshCallback(func(w *glfw.Window) {
		a.render()
		w.SwapBuffers()
	})
}

// Pacer exposes the frame counter so other goroutines can read the FPS.
func (a *App) Pacer() *pacing.FrameCounter { return a.pacer }

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()

	glfw.PollEvents()
	a.handleActions()

	a.screen.Animate(a.frame)
	a.frame++
	switch a.screen.Update(a.inputManager) {
	case menu.ActionCycleTheme:
		a.cycleTheme()
	case menu.ActionCyclePacing:
		a.cyclePacing()
	case menu.ActionQuit:
		a.window.SetShouldClose(true)
	}
	a.syncVSync()

	a.render()
	a.window.SwapBuffers()

	if d := time.Since(startTick); d > config.GetSlowFrameThreshold() {
		a.log.Warn("slow frame", "duration", d, "top", profiling.TopN(5))
	}

	a.inputManager.PostUpdate()
	a.pacer.NewFrame(config.GetFPSLimit())
	a.screen.PushFrameTime(a.pacer.FrameTime())

	if now := time.Now(); now.Sub(a.lastStat) >= statInterval {
		a.lastStat = now
		st := a.pacer.UpdateStat()
		a.log.Debug("frame stats",
			"fps", st.AvgFPS, "min_fps", st.MinFPS, "max_fps", st.MaxFPS,
			"dropped", a.pacer.DroppedFrames(), "mode", a.pacer.Mode())
	}
}

func (a *App) handleActions() {
	im := a.inputManager
	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionCycleTheme) {
		a.cycleTheme()
	}
	if im.JustPressed(input.ActionCyclePacing) {
		a.cyclePacing()
	}
	if im.JustPressed(input.ActionToggleStats) {
		a.screen.Graph.SetVisible(!a.screen.Graph.Visible())
	}
	if im.JustPressed(input.ActionToggleVisibility) {
		p := a.screen.Settings.Panel
		p.SetVisible(!p.Visible())
	}
	if d := im.ScrollDelta(); d.Y() != 0 || d.X() != 0 {
		a.screen.ScrollTiles(scrollStep(d.X(), d.Y(), im.IsActive(input.ActionScrollModifier)))
	}
}

func (a *App) render() {
	defer profiling.Track("app.render")()
	t := ui.LookupTheme(a.theme).Value()
	if t == nil {
		t = ui.DefaultTheme
	}
	a.renderer.BeginFrame(t.Color(ui.ColorBackground))
	a.screen.Draw()
	graphics.CheckError("app.render")
}

func (a *App) cycleTheme() {
	a.theme = nextTheme(ui.ThemeNames(), a.theme)
	config.SetThemeName(a.theme)
	a.screen.SetTheme(a.theme)
	a.log.Info("theme changed", "theme", a.theme)
}

func (a *App) cyclePacing() {
	m := nextMode(a.pacer.Mode())
	config.SetPacingMode(int(m))
	a.pacer.SetMode(m)
	a.screen.SetPacingMode(m)
	a.log.Info("pacing mode changed", "mode", m)
}

func (a *App) syncVSync() {
	if v := config.GetVSync(); v != a.vsync {
		a.vsync = v
		glfw.SwapInterval(swapInterval(v))
	}
}

// Destroy releases the widget tree and GL resources.
func (a *App) Destroy() {
	a.screen.Destroy()
	a.renderer.Dispose()
}

// nextTheme returns the theme after current in name order, wrapping around.
func nextTheme(names []string, current string) string {
	if len(names) == 0 {
		return current
	}
	names = slices.Clone(names)
	slices.Sort(names)
	i, found := slices.BinarySearch(names, current)
	if found {
		i++
	}
	return names[i%len(names)]
}

func nextMode(m pacing.Mode) pacing.Mode {
	return pacing.ClampMode((int(m) + 1) % (int(pacing.ModeVsyncLike) + 1))
}

// scrollStep converts a wheel delta into a horizontal strip offset. The
// vertical wheel scrolls sideways while the modifier is held or when the
// device has no horizontal axis.
func scrollStep(dx, dy float32, modifier bool) float32 {
	const pixelsPerNotch = 24
	if dx != 0 && !modifier {
		return -dx * pixelsPerNotch
	}
	return -dy * pixelsPerNotch
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}
