package config

import (
	"testing"
	"time"

	"mini-ui/internal/pacing"
)

func TestSettersClamp(t *testing.T) {
	defer Reset()

	SetFPSLimit(-10)
	if GetFPSLimit() != 0 {
		t.Errorf("fps limit = %d, want 0", GetFPSLimit())
	}
	SetFPSLimit(5000)
	if GetFPSLimit() != 1000 {
		t.Errorf("fps limit = %d, want 1000", GetFPSLimit())
	}
	SetPacingMode(17)
	if GetPacingMode() != pacing.ModeVsyncLike {
		t.Errorf("mode = %v, want vsync", GetPacingMode())
	}
	SetSpinThreshold(-time.Second)
	if GetSpinThreshold() != 0 {
		t.Errorf("spin = %v, want 0", GetSpinThreshold())
	}
	SetEMAWeight(1.5)
	if GetEMAWeight() != 1 {
		t.Errorf("ema weight = %v, want 1", GetEMAWeight())
	}
	SetWindowSize(10, 10)
	if w, h := GetWindowSize(); w != 320 || h != 240 {
		t.Errorf("window = %dx%d, want 320x240", w, h)
	}
}

func TestLoadAppliesPresentKeys(t *testing.T) {
	defer Reset()

	doc := `
[window]
width = 800

[pacing]
fps_limit = 60
mode = "adaptive"
spin_threshold = "250us"
ema_weight = 0.8

[ui]
theme = "light"
slow_frame = "20ms"
`
	if err := Load([]byte(doc)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w, h := GetWindowSize(); w != 800 || h != 720 {
		t.Errorf("window = %dx%d, want 800x720", w, h)
	}
	if GetFPSLimit() != 60 || GetPacingMode() != pacing.ModeAdaptive {
		t.Errorf("pacing = %d %v", GetFPSLimit(), GetPacingMode())
	}
	opts := PacingOptions()
	if opts.SpinThreshold != 250*time.Microsecond || opts.EMAWeight != 0.8 {
		t.Errorf("pacing options = %+v", opts)
	}
	if opts.HistorySize != pacing.DefaultHistorySize {
		t.Errorf("absent history changed to %d", opts.HistorySize)
	}
	if GetThemeName() != "light" || GetSlowFrameThreshold() != 20*time.Millisecond {
		t.Errorf("ui = %q %v", GetThemeName(), GetSlowFrameThreshold())
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	defer Reset()

	cases := map[string]string{
		"unknown key":  "[pacing]\nturbo = true\n",
		"unknown mode": "[pacing]\nmode = \"warp\"\n",
		"bad duration": "[pacing]\nfps_limit = 30\nspin_threshold = \"soon\"\n",
		"syntax":       "[pacing\n",
	}
	for name, doc := range cases {
		if err := Load([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if GetFPSLimit() != 144 {
		t.Errorf("failed load applied fps limit %d", GetFPSLimit())
	}
}

func TestSpinThresholdReachesPacer(t *testing.T) {
	defer Reset()

	cases := []struct {
		doc  string
		want time.Duration
	}{
		{"", pacing.DefaultSpinThreshold},
		{"[pacing]\nspin_threshold = \"0s\"", 0},
		{"[pacing]\nspin_threshold = \"-1ms\"", 0},
		{"[pacing]\nspin_threshold = \"1ms\"", time.Millisecond},
	}
	for _, c := range cases {
		Reset()
		if err := Load([]byte(c.doc)); err != nil {
			t.Fatalf("Load(%q): %v", c.doc, err)
		}
		if got := pacing.New(PacingOptions()).SpinThreshold(); got != c.want {
			t.Errorf("%q: pacer spin = %v, want %v", c.doc, got, c.want)
		}
	}
}

func TestZeroEMAWeightReachesPacer(t *testing.T) {
	defer Reset()

	if err := Load([]byte("[pacing]\nema_weight = 0.0")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := PacingOptions().EMAWeight; got != 0 {
		t.Fatalf("ema weight = %v, want 0", got)
	}
}
