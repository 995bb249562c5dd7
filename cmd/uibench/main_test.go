package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mini-ui/internal/pacing"
)

func TestRunUnpaced(t *testing.T) {
	opts := options{frames: 30, fps: 0, mode: pacing.ModeNone, width: 640, height: 480, theme: "dark"}
	rep, err := run(opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.stats.Samples != 29 {
		t.Fatalf("samples: got %d, want 29", rep.stats.Samples)
	}
	// Every frame recolors one tile, so the root is blitted every frame and
	// far fewer quads are filled than a full redraw would need.
	if rep.calls.Blits < opts.frames {
		t.Fatalf("blits: got %d, want at least %d", rep.calls.Blits, opts.frames)
	}
	if rep.calls.Surfaces == 0 {
		t.Fatal("no composite surfaces allocated")
	}

	out := render(opts, rep)
	for _, want := range []string{"none", "unlimited", "dropped", "blits / frame"} {
		if !strings.Contains(out, want) {
			t.Errorf("report lacks %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsZeroFrames(t *testing.T) {
	if _, err := run(options{width: 10, height: 10}); err == nil {
		t.Fatal("expected an error for zero frames")
	}
}

func TestWritePNG(t *testing.T) {
	rep, err := run(options{frames: 2, mode: pacing.ModeNone, width: 320, height: 240, theme: "light"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writePNG(path, rep.painter); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Fatalf("size: got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestTopCostsOrder(t *testing.T) {
	got := topCosts(map[string]time.Duration{
		"a": time.Millisecond,
		"b": 3 * time.Millisecond,
		"c": time.Millisecond,
		"d": 2 * time.Millisecond,
	}, 3)
	want := []string{"b", "d", "a"}
	if len(got) != len(want) {
		t.Fatalf("len: got %d", len(got))
	}
	for i, w := range want {
		if got[i].name != w {
			t.Errorf("[%d]: got %s, want %s", i, got[i].name, w)
		}
	}
}
