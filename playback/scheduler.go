package playback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/pathviz/grid"
)

// RevealKind tells the renderer which layer a revealed cell belongs to
type RevealKind int

const (
	RevealVisited RevealKind = iota
	RevealPath
)

func (k RevealKind) String() string {
	if k == RevealPath {
		return "path"
	}
	return "visited"
}

// Mode is the playback style of a run
type Mode int

const (
	ModeSnapshot Mode = iota
	ModeAnimated
)

func (m Mode) String() string {
	if m == ModeAnimated {
		return "animated"
	}
	return "snapshot"
}

// RunID identifies one playback run
type RunID = uuid.UUID

// RevealFunc receives each revealed cell key in timeline order
type RevealFunc func(key string, kind RevealKind)

// Observer is notified of run lifecycle transitions
type Observer interface {
	RunStarted(id RunID, mode Mode, visits, route int)
	RunCompleted(id RunID, mode Mode)
	RunCancelled(id RunID)
}

// Marks is the set of revealed cell keys per layer
type Marks struct {
	Visited map[string]struct{}
	Path    map[string]struct{}
}

func newMarks() Marks {
	return Marks{
		Visited: make(map[string]struct{}),
		Path:    make(map[string]struct{}),
	}
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClearHook registers f to run whenever a new run wipes the previous marks
func WithClearHook(f func()) Option {
	return func(s *Scheduler) { s.onClear = f }
}

// WithObserver registers a lifecycle observer
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// Scheduler replays a visitation order and route as timed reveal events
// A new run, or Cancel, supersedes the current one: its pending timer is
// stopped and the generation bumps, so stale callbacks become no-ops.
// Reveal and completion callbacks run serialized with Play and Cancel and must
// not call back into Play or Cancel synchronously; read-only accessors are safe.
type Scheduler struct {
	clock    Clock
	onClear  func()
	observer Observer

	// dispatch serializes run transitions with callback delivery
	dispatch sync.Mutex

	mu         sync.RWMutex
	generation uint64
	current    *run
	marks      Marks

	busy atomic.Bool
}

// event is one slot of a run's timeline
type event struct {
	key      string
	kind     RevealKind
	deadline time.Time
}

type run struct {
	id         RunID
	mode       Mode
	generation uint64
	events     []event
	cursor     int
	onReveal   RevealFunc
	onComplete func()
	timer      Timer
}

// NewScheduler creates a scheduler driven by clock
func NewScheduler(clock Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock: clock,
		marks: newMarks(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PlayAnimated reveals visits at index*interval, then, once the last visit is
// shown, route cells at index*interval from that point, then completes
// An empty route (trapped target) completes right after the last visit
func (s *Scheduler) PlayAnimated(visits, route []grid.Cell, interval time.Duration, onReveal RevealFunc, onComplete func()) RunID {
	if interval < 0 {
		interval = 0
	}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.supersede()

	origin := s.clock.Now()
	events := make([]event, 0, len(visits)+len(route))
	for i, c := range visits {
		events = append(events, event{
			key:      c.Key(),
			kind:     RevealVisited,
			deadline: origin.Add(time.Duration(i) * interval),
		})
	}
	pathOrigin := origin
	if len(visits) > 0 {
		pathOrigin = events[len(events)-1].deadline
	}
	for i, c := range route {
		events = append(events, event{
			key:      c.Key(),
			kind:     RevealPath,
			deadline: pathOrigin.Add(time.Duration(i) * interval),
		})
	}

	s.mu.Lock()
	s.generation++
	r := &run{
		id:         uuid.New(),
		mode:       ModeAnimated,
		generation: s.generation,
		events:     events,
		onReveal:   onReveal,
		onComplete: onComplete,
	}
	s.current = r
	s.busy.Store(true)
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.RunStarted(r.id, ModeAnimated, len(visits), len(route))
	}

	s.scheduleNext(r)
	return r.id
}

// PlaySnapshot reveals everything at once without animating
func (s *Scheduler) PlaySnapshot(visits, route []grid.Cell, onReveal RevealFunc) RunID {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.supersede()

	s.mu.Lock()
	s.generation++
	id := uuid.New()
	for _, c := range visits {
		s.marks.Visited[c.Key()] = struct{}{}
	}
	for _, c := range route {
		s.marks.Path[c.Key()] = struct{}{}
	}
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.RunStarted(id, ModeSnapshot, len(visits), len(route))
	}

	if onReveal != nil {
		for _, c := range visits {
			onReveal(c.Key(), RevealVisited)
		}
		for _, c := range route {
			onReveal(c.Key(), RevealPath)
		}
	}

	if s.observer != nil {
		s.observer.RunCompleted(id, ModeSnapshot)
	}
	return id
}

// Cancel discards the current run's pending reveals; revealed marks stay
func (s *Scheduler) Cancel() {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	prev := s.stopLocked()
	s.generation++
	s.mu.Unlock()

	if prev != nil && s.observer != nil {
		s.observer.RunCancelled(prev.id)
	}
}

// Clear cancels and wipes all marks
func (s *Scheduler) Clear() {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	s.supersede()
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
}

// Busy reports whether an animated run is in progress
func (s *Scheduler) Busy() bool {
	return s.busy.Load()
}

// Generation returns the current run generation, bumped by every Play, Cancel and Clear
func (s *Scheduler) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Marks returns a copy of the revealed cells
func (s *Scheduler) Marks() Marks {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := Marks{
		Visited: make(map[string]struct{}, len(s.marks.Visited)),
		Path:    make(map[string]struct{}, len(s.marks.Path)),
	}
	for k := range s.marks.Visited {
		m.Visited[k] = struct{}{}
	}
	for k := range s.marks.Path {
		m.Path[k] = struct{}{}
	}
	return m
}

// Revealed reports the topmost layer revealed for key
func (s *Scheduler) Revealed(key string) (RevealKind, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.marks.Path[key]; ok {
		return RevealPath, true
	}
	if _, ok := s.marks.Visited[key]; ok {
		return RevealVisited, true
	}
	return 0, false
}

// supersede stops the current run and wipes marks, caller holds dispatch
func (s *Scheduler) supersede() {
	s.mu.Lock()
	prev := s.stopLocked()
	s.marks = newMarks()
	s.mu.Unlock()

	if prev != nil && s.observer != nil {
		s.observer.RunCancelled(prev.id)
	}
	if s.onClear != nil {
		s.onClear()
	}
}

// stopLocked detaches the in-flight run, returning it if it had not completed
func (s *Scheduler) stopLocked() *run {
	prev := s.current
	s.current = nil
	s.busy.Store(false)
	if prev == nil {
		return nil
	}
	if prev.timer != nil {
		prev.timer.Stop()
		prev.timer = nil
	}
	return prev
}

// scheduleNext arms a timer for the next pending event, caller holds dispatch
func (s *Scheduler) scheduleNext(r *run) {
	var delay time.Duration
	if r.cursor < len(r.events) {
		delay = r.events[r.cursor].deadline.Sub(s.clock.Now())
	}
	if delay < 0 {
		delay = 0
	}

	timer := s.clock.AfterFunc(delay, func() { s.fire(r) })

	s.mu.Lock()
	if s.current == r {
		r.timer = timer
	}
	s.mu.Unlock()
}

// fire reveals every event of r that is due, then re-arms or completes
func (s *Scheduler) fire(r *run) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	if s.current != r || s.generation != r.generation {
		s.mu.Unlock()
		return
	}
	r.timer = nil

	now := s.clock.Now()
	start := r.cursor
	for r.cursor < len(r.events) && !r.events[r.cursor].deadline.After(now) {
		ev := r.events[r.cursor]
		if ev.kind == RevealPath {
			s.marks.Path[ev.key] = struct{}{}
		} else {
			s.marks.Visited[ev.key] = struct{}{}
		}
		r.cursor++
	}
	due := r.events[start:r.cursor]

	finished := r.cursor >= len(r.events)
	if finished {
		s.current = nil
		s.busy.Store(false)
	}
	s.mu.Unlock()

	if r.onReveal != nil {
		for _, ev := range due {
			r.onReveal(ev.key, ev.kind)
		}
	}

	if !finished {
		s.scheduleNext(r)
		return
	}

	if s.observer != nil {
		s.observer.RunCompleted(r.id, ModeAnimated)
	}
	if r.onComplete != nil {
		r.onComplete()
	}
}
