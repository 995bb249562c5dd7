package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"mini-ui/internal/app"
	"mini-ui/internal/config"
	"mini-ui/internal/graphics"
	"mini-ui/internal/input"
	"mini-ui/internal/ui"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	themePath := flag.String("themes", "", "TOML theme file, overrides [ui] theme_file")
	theme := flag.String("theme", "", "initial theme name")
	verbose := flag.Bool("v", false, "log frame statistics")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	ui.SetLogger(log)
	graphics.SetLogger(log)

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			closer.Fatalln(err)
		}
	}
	if *themePath != "" {
		config.SetThemeFile(*themePath)
	}
	if *theme != "" {
		config.SetThemeName(*theme)
	}
	if p := config.GetThemeFile(); p != "" {
		ts, err := ui.LoadThemes(p)
		if err != nil {
			closer.Fatalln(err)
		}
		log.Info("themes loaded", "path", p, "count", len(ts))
	}

	if err := glfw.Init(); err != nil {
		closer.Fatalln(err)
	}
	window, err := setupWindow()
	if err != nil {
		glfw.Terminate()
		closer.Fatalln(err)
	}

	im := input.NewInputManager()
	a, err := app.NewApp(window, im, log)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		closer.Fatalln(err)
	}

	// GL and glfw teardown must stay on this thread, so the closer hook only
	// asks the loop to stop and waits for main to finish releasing.
	done := make(chan struct{})
	closer.Bind(shutdownHook(done, func() { window.SetShouldClose(true) }))

	a.Run()
	a.Destroy()
	window.Destroy()
	glfw.Terminate()
	close(done)
	closer.Close()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	w, h := config.GetWindowSize()
	window, err := glfw.CreateWindow(w, h, "mini-ui", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	return window, nil
}

// shutdownHook asks the loop to stop through requestStop and waits for done.
// Once done is closed glfw is gone, so requestStop is skipped.
func shutdownHook(done <-chan struct{}, requestStop func()) func() {
	return func() {
		select {
		case <-done:
			return
		default:
		}
		requestStop()
		<-done
	}
}
