// Command uibench drives the demo screen through the software painter and
// the frame pacer, then prints timing and draw-call statistics.
package main

import (
	"cmp"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"mini-ui/internal/config"
	"mini-ui/internal/graphics/soft"
	"mini-ui/internal/pacing"
	"mini-ui/internal/profiling"
	"mini-ui/internal/ui"
	"mini-ui/internal/ui/menu"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

type options struct {
	frames        int
	fps           int
	mode          pacing.Mode
	width, height int
	theme         string
	pngPath       string
}

type report struct {
	stats   pacing.Stats
	dropped uint64
	calls   soft.Counters
	elapsed time.Duration
	top     []cost
	painter *soft.Painter
}

type cost struct {
	name  string
	total time.Duration
}

// idlePointer keeps the cursor off screen.
type idlePointer struct{}

func (idlePointer) CursorPos() mgl32.Vec2  { return mgl32.Vec2{-1, -1} }
func (idlePointer) MouseDown() bool        { return false }
func (idlePointer) MouseJustPressed() bool { return false }

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	frames := flag.Int("frames", 600, "frames to render")
	fps := flag.Int("fps", -1, "frame rate cap, 0 for unlimited (default from config)")
	mode := flag.String("mode", "", "pacing mode: none, hybrid, adaptive, vsync")
	width := flag.Int("width", 0, "viewport width (default from config)")
	height := flag.Int("height", 0, "viewport height (default from config)")
	theme := flag.String("theme", "", "theme name")
	pngPath := flag.String("png", "", "write the last frame to this PNG file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ui.SetLogger(log)

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			closer.Fatalln(err)
		}
	}
	if p := config.GetThemeFile(); p != "" {
		if _, err := ui.LoadThemes(p); err != nil {
			closer.Fatalln(err)
		}
	}

	opts := options{frames: *frames, fps: config.GetFPSLimit(), mode: config.GetPacingMode(), theme: config.GetThemeName(), pngPath: *pngPath}
	opts.width, opts.height = config.GetWindowSize()
	if *fps >= 0 {
		opts.fps = *fps
	}
	if *mode != "" {
		m, ok := pacing.ParseMode(*mode)
		if !ok {
			closer.Fatalln("unknown pacing mode:", *mode)
		}
		opts.mode = m
	}
	if *width > 0 {
		opts.width = *width
	}
	if *height > 0 {
		opts.height = *height
	}
	if *theme != "" {
		opts.theme = *theme
	}

	rep, err := run(opts)
	if err != nil {
		closer.Fatalln(err)
	}
	if opts.pngPath != "" {
		if err := writePNG(opts.pngPath, rep.painter); err != nil {
			closer.Fatalln(err)
		}
	}
	fmt.Println(render(opts, rep))
	closer.Close()
}

func run(opts options) (report, error) {
	if opts.frames <= 0 {
		return report{}, fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	p := soft.New(opts.width, opts.height)
	screen := menu.NewScreen(float32(opts.width), float32(opts.height), opts.theme)
	if err := screen.Initialize(p); err != nil {
		return report{}, fmt.Errorf("initialize screen: %w", err)
	}
	defer screen.Destroy()

	popts := config.PacingOptions()
	popts.Mode = opts.mode
	pacer := pacing.New(popts)
	screen.SetPacingMode(opts.mode)

	bg := ui.LookupTheme(opts.theme).Value()
	if bg == nil {
		bg = ui.DefaultTheme
	}
	totals := map[string]time.Duration{}
	p.ResetCounters()
	start := time.Now()
	for i := range opts.frames {
		profiling.ResetFrame()
		screen.Animate(i)
		screen.Update(idlePointer{})
		p.ClearScreen(bg.Color(ui.ColorBackground))
		screen.Draw()
		for k, v := range profiling.Snapshot() {
			totals[k] += v
		}
		pacer.NewFrame(opts.fps)
		screen.PushFrameTime(pacer.FrameTime())
	}
	rep := report{
		stats:   pacer.UpdateStat(),
		dropped: pacer.DroppedFrames(),
		calls:   p.Calls,
		elapsed: time.Since(start),
		top:     topCosts(totals, 5),
		painter: p,
	}
	return rep, nil
}

func topCosts(totals map[string]time.Duration, n int) []cost {
	out := make([]cost, 0, len(totals))
	for k, v := range totals {
		out = append(out, cost{k, v})
	}
	slices.SortFunc(out, func(a, b cost) int {
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return out[:min(n, len(out))]
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	labelStyle  = cellStyle.Foreground(lipgloss.Color("243"))
	titleStyle  = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1)
)

func render(opts options, rep report) string {
	fpsCap := "unlimited"
	if opts.fps > 0 {
		fpsCap = strconv.Itoa(opts.fps)
	}
	perFrame := func(n int) string {
		return strconv.FormatFloat(float64(n)/float64(opts.frames), 'f', 2, 64)
	}
	rows := [][]string{
		{"mode", opts.mode.String()},
		{"fps cap", fpsCap},
		{"frames", strconv.Itoa(opts.frames)},
		{"wall time", profiling.FormatMs(rep.elapsed)},
		{"avg fps", strconv.FormatFloat(rep.stats.AvgFPS, 'f', 1, 64)},
		{"min / max fps", strconv.FormatFloat(rep.stats.MinFPS, 'f', 1, 64) + " / " + strconv.FormatFloat(rep.stats.MaxFPS, 'f', 1, 64)},
		{"avg frame", profiling.FormatMs(rep.stats.AvgFrameTime)},
		{"min / max frame", profiling.FormatMs(rep.stats.MinFrameTime) + " / " + profiling.FormatMs(rep.stats.MaxFrameTime)},
		{"dropped", strconv.FormatUint(rep.dropped, 10)},
		{"fills / frame", perFrame(rep.calls.Fills)},
		{"blits / frame", perFrame(rep.calls.Blits)},
		{"scissored clears", strconv.Itoa(rep.calls.ClearRects)},
		{"full clears", strconv.Itoa(rep.calls.Clears)},
		{"surfaces", strconv.Itoa(rep.calls.Surfaces)},
	}
	for _, c := range rep.top {
		rows = append(rows, []string{c.name, profiling.FormatMs(c.total)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers("metric", "value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			}
			return cellStyle
		})
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("uibench %dx%d %s", opts.width, opts.height, opts.theme)),
		t.String())
}

func writePNG(path string, p *soft.Painter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, p.Screen()); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
