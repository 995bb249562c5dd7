package pacing

import (
	"runtime"
	"time"
)

// Clock is the time source the pacer sleeps on.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	// Yield gives up the processor briefly while spinning.
	Yield()
}

// SystemClock uses the Go runtime's monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
func (SystemClock) Yield()                { runtime.Gosched() }
