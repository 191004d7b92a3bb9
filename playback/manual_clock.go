package playback

import (
	"sync"
	"time"
)

// ManualClock is a controllable clock for tests
// Timers fire synchronously inside Advance, in deadline order, ties in creation order
type ManualClock struct {
	mu          sync.Mutex
	currentTime time.Time
	seq         uint64
	pending     []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// NewManualClock creates a manual clock with the given start time
func NewManualClock(startTime time.Time) *ManualClock {
	return &ManualClock{currentTime: startTime}
}

// Now returns the current mocked time
func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// AfterFunc registers f to fire once the clock reaches now+d
func (m *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		clock:    m,
		deadline: m.currentTime.Add(d),
		seq:      m.seq,
		fn:       f,
	}
	m.pending = append(m.pending, t)
	return t
}

// Stop cancels the timer if it has not fired
func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	m.remove(t)
	return true
}

// Advance moves time forward by d, firing every timer that comes due on the way
// Timers created by fired callbacks are honored if they fall inside the window
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.currentTime.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.earliest()
		if next == nil || next.deadline.After(target) {
			m.currentTime = target
			m.mu.Unlock()
			return
		}
		m.currentTime = next.deadline
		next.done = true
		m.remove(next)
		m.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers waiting to fire
func (m *ManualClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *ManualClock) earliest() *manualTimer {
	var best *manualTimer
	for _, t := range m.pending {
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *ManualClock) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
