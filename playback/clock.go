package playback

import (
	"time"

	"github.com/lixenwraith/pathviz/core"
)

// Timer is a pending callback that can be cancelled
type Timer interface {
	// Stop prevents the callback from firing, false if it already fired or was stopped
	Stop() bool
}

// Clock supplies time and one-shot timers to the scheduler
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the real wall clock; callbacks run on timer goroutines with crash recovery
type SystemClock struct{}

// NewSystemClock creates a wall clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f after d
func (c *SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		defer core.Recover()
		f()
	})
}
