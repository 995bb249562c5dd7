// Package pacing limits the frame rate and keeps frame statistics.
package pacing

import (
	"math"
	"strings"
	"sync/atomic"
	"time"
)

// Mode selects how NewFrame waits out the rest of the frame budget.
type Mode uint8

const (
	// ModeNone never waits.
	ModeNone Mode = iota
	// ModeHybrid sleeps coarsely, then spins for the last SpinThreshold.
	ModeHybrid
	// ModeAdaptive learns the OS oversleep and sleeps that much less.
	ModeAdaptive
	// ModeVsyncLike sleeps to an absolute schedule advanced once per frame.
	ModeVsyncLike
)

var modeNames = [...]string{"none", "hybrid", "adaptive", "vsync"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ClampMode maps any integer to the nearest valid mode.
func ClampMode(v int) Mode {
	switch {
	case v < int(ModeNone):
		return ModeNone
	case v > int(ModeVsyncLike):
		return ModeVsyncLike
	}
	return Mode(v)
}

// ParseMode looks a mode up by name. Unknown names return ModeHybrid and
// false.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), true
		}
	}
	return ModeHybrid, false
}

const (
	// DefaultSpinThreshold is the spin tail used by Hybrid and Adaptive.
	DefaultSpinThreshold = 500 * time.Microsecond
	// DefaultEMAWeight is the weight of the previous sleep offset.
	DefaultEMAWeight = 0.9
	// DefaultHistorySize is the number of frames UpdateStat averages.
	DefaultHistorySize = 120

	adaptiveBatch     = 10
	adaptiveSpinLimit = 200 * time.Microsecond
	resyncFrames      = 2
)

// Options configures a FrameCounter. Start from DefaultOptions: New takes
// SpinThreshold and EMAWeight as given, so a zero there is a real setting.
// A nil Clock and a non-positive HistorySize take defaults.
type Options struct {
	Mode          Mode
	SpinThreshold time.Duration
	EMAWeight     float64
	HistorySize   int
	Clock         Clock
}

// Stats summarizes the frames in the history ring.
type Stats struct {
	AvgFPS       float64
	MinFPS       float64
	MaxFPS       float64
	AvgFrameTime time.Duration
	MinFrameTime time.Duration
	MaxFrameTime time.Duration
	Samples      int
}

// FrameCounter paces the render loop. NewFrame, UpdateStat and the setters
// belong to the render goroutine; FPS, FrameTime, DroppedFrames and Stats
// may be read from anywhere.
type FrameCounter struct {
	mode   Mode
	clock  Clock
	spin   time.Duration
	weight float64

	started   bool
	lastStart time.Time
	next      time.Time

	sleepOffset time.Duration
	errSum      time.Duration
	errCount    int

	history []time.Duration
	head    int
	filled  int

	fps       atomic.Uint64
	frameTime atomic.Int64
	dropped   atomic.Uint64
	stats     atomic.Pointer[Stats]
}

// DefaultOptions returns the Hybrid mode settings with the default tuning.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeHybrid,
		SpinThreshold: DefaultSpinThreshold,
		EMAWeight:     DefaultEMAWeight,
		HistorySize:   DefaultHistorySize,
	}
}

// New creates a FrameCounter. A negative spin threshold becomes zero and the
// EMA weight is clamped to 0..1.
func New(opts Options) *FrameCounter {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if math.IsNaN(opts.EMAWeight) {
		opts.EMAWeight = DefaultEMAWeight
	}
	opts.EMAWeight = min(max(opts.EMAWeight, 0), 1)
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	f := &FrameCounter{
		mode:    ClampMode(int(opts.Mode)),
		clock:   opts.Clock,
		weight:  opts.EMAWeight,
		history: make([]time.Duration, opts.HistorySize),
	}
	f.SetSpinThreshold(opts.SpinThreshold)
	f.stats.Store(&Stats{})
	return f
}

func (f *FrameCounter) Mode() Mode                   { return f.mode }
func (f *FrameCounter) SpinThreshold() time.Duration { return f.spin }

// SetMode switches strategy. The vsync schedule restarts from the last frame
// start.
func (f *FrameCounter) SetMode(m Mode) {
	f.mode = ClampMode(int(m))
	f.next = f.lastStart
}

// SetSpinThreshold sets the spin tail. Negative values become zero.
func (f *FrameCounter) SetSpinThreshold(d time.Duration) { f.spin = max(d, 0) }

// SleepOffset is the learned oversleep the adaptive mode subtracts.
func (f *FrameCounter) SleepOffset() time.Duration { return f.sleepOffset }

// FPS returns the rate implied by the last frame, or 0 before the first.
func (f *FrameCounter) FPS() float64 { return math.Float64frombits(f.fps.Load()) }

// FrameTime returns the duration of the last frame.
func (f *FrameCounter) FrameTime() time.Duration { return time.Duration(f.frameTime.Load()) }

// DroppedFrames counts frames that overran 1.5× their budget or forced a
// schedule reset.
func (f *FrameCounter) DroppedFrames() uint64 { return f.dropped.Load() }

// Stats returns the snapshot computed by the last UpdateStat.
func (f *FrameCounter) Stats() Stats { return *f.stats.Load() }

// Reset forgets timing history, learned offsets and counters.
func (f *FrameCounter) Reset() {
	f.started = false
	f.lastStart, f.next = time.Time{}, time.Time{}
	f.sleepOffset, f.errSum, f.errCount = 0, 0, 0
	clear(f.history)
	f.head, f.filled = 0, 0
	f.fps.Store(0)
	f.frameTime.Store(0)
	f.dropped.Store(0)
	f.stats.Store(&Stats{})
}

// NewFrame marks the start of a frame. With maxFPS > 0 it first waits out
// whatever is left of the previous frame's budget. The first call only
// records the start time.
func (f *FrameCounter) NewFrame(maxFPS int) {
	now := f.clock.Now()
	if !f.started {
		f.started = true
		f.lastStart, f.next = now, now
		return
	}

	var target time.Duration
	dropped, scheduled := false, false
	if maxFPS > 0 {
		target = time.Second / time.Duration(maxFPS)
		deadline := f.lastStart.Add(target)
		switch f.mode {
		case ModeHybrid:
			f.waitHybrid(deadline)
		case ModeAdaptive:
			f.waitAdaptive(deadline)
		case ModeVsyncLike:
			dropped = f.waitVsync(now, target)
			scheduled = true
		}
	}

	end := f.clock.Now()
	elapsed := end.Sub(f.lastStart)
	f.lastStart = end
	if !scheduled {
		// Keep the vsync anchor current so a later capped frame measures
		// against this one, not against a schedule left behind.
		f.next = end
	}

	if target > 0 && !dropped && elapsed > target*3/2 {
		dropped = true
	}
	if dropped {
		f.dropped.Add(1)
	}
	f.record(elapsed)
}

func (f *FrameCounter) waitHybrid(deadline time.Time) {
	if remaining := deadline.Sub(f.clock.Now()); remaining > f.spin {
		f.clock.Sleep(remaining - f.spin)
	}
	f.spinUntil(deadline)
}

func (f *FrameCounter) waitAdaptive(deadline time.Time) {
	before := f.clock.Now()
	request := deadline.Sub(before) - f.sleepOffset - f.spin/2
	if request > 0 {
		f.clock.Sleep(request)
		f.learn(f.clock.Now().Sub(before) - request)
	}
	if rem := deadline.Sub(f.clock.Now()); rem > 0 && rem < adaptiveSpinLimit {
		f.spinUntil(deadline)
	}
}

// learn folds one oversleep sample into the offset. The offset moves once
// per batch of samples.
func (f *FrameCounter) learn(oversleep time.Duration) {
	f.errSum += oversleep
	f.errCount++
	if f.errCount < adaptiveBatch {
		return
	}
	avg := float64(f.errSum) / float64(f.errCount)
	f.sleepOffset = time.Duration(f.weight*float64(f.sleepOffset) + (1-f.weight)*avg)
	f.errSum, f.errCount = 0, 0
}

// waitVsync advances the absolute schedule by one interval and sleeps to it.
// A schedule more than two intervals in the past is re-anchored at now and
// reported as a drop.
func (f *FrameCounter) waitVsync(now time.Time, target time.Duration) bool {
	f.next = f.next.Add(target)
	if now.Sub(f.next) > resyncFrames*target {
		f.next = now
		return true
	}
	if d := f.next.Sub(now); d > 0 {
		f.clock.Sleep(d)
	}
	return false
}

func (f *FrameCounter) spinUntil(deadline time.Time) {
	for f.clock.Now().Before(deadline) {
		f.clock.Yield()
	}
}

func (f *FrameCounter) record(elapsed time.Duration) {
	f.history[f.head] = elapsed
	f.head = (f.head + 1) % len(f.history)
	if f.filled < len(f.history) {
		f.filled++
	}
	f.frameTime.Store(int64(elapsed))
	f.fps.Store(math.Float64bits(fpsOf(elapsed)))
}

// UpdateStat recomputes the averages over the history ring.
func (f *FrameCounter) UpdateStat() Stats {
	if f.filled == 0 {
		s := Stats{}
		f.stats.Store(&s)
		return s
	}
	var sum time.Duration
	lo, hi := time.Duration(math.MaxInt64), time.Duration(0)
	for _, d := range f.history[:f.filled] {
		sum += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	avg := sum / time.Duration(f.filled)
	s := Stats{
		AvgFPS:       fpsOf(avg),
		MinFPS:       fpsOf(hi),
		MaxFPS:       fpsOf(lo),
		AvgFrameTime: avg,
		MinFrameTime: lo,
		MaxFrameTime: hi,
		Samples:      f.filled,
	}
	f.stats.Store(&s)
	return s
}

func fpsOf(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return 1e9 / float64(d.Nanoseconds())
}
