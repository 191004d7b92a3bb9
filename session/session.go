// Package session is the editing and visualization controller behind the
// terminal front-end. It owns the board, the selected algorithm and the
// playback scheduler, and refuses edits while an animation is running.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/pathviz/audio"
	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/logging"
	"github.com/lixenwraith/pathviz/maze"
	"github.com/lixenwraith/pathviz/metrics"
	"github.com/lixenwraith/pathviz/navigation"
	"github.com/lixenwraith/pathviz/playback"
)

var (
	ErrBusy        = errors.New("visualization in progress")
	ErrInvalidEdit = errors.New("invalid edit")
)

// Config is the initial board and playback setup
type Config struct {
	Rows      int
	Cols      int
	Start     grid.Cell
	Target    grid.Cell
	Interval  time.Duration
	Algorithm navigation.Algorithm
	MazeSeed  int64 // 0 picks a time-based seed per maze
}

// DefaultConfig is the 27x85 board with endpoints on the middle row
func DefaultConfig() Config {
	return ConfigFor(27, 85)
}

// ConfigFor places the endpoints on the middle row (rounded down the board),
// 10 cells in from each side, a quarter of the width on narrow boards
func ConfigFor(rows, cols int) Config {
	mid := max(min((rows+1)/2, rows-1), 0)
	inset := 10
	if cols < 2*inset+2 {
		inset = cols / 4
	}
	return Config{
		Rows:      rows,
		Cols:      cols,
		Start:     grid.Cell{Row: mid, Col: inset},
		Target:    grid.Cell{Row: mid, Col: cols - 1 - inset},
		Interval:  10 * time.Millisecond,
		Algorithm: navigation.Dijkstra,
	}
}

// Listener receives playback output; calls arrive on scheduler dispatch and
// must not call back into the Session synchronously
type Listener interface {
	Revealed(key string, kind playback.RevealKind)
	Cleared()
	Completed(reachable bool)
}

// CuePlayer plays sound cues
type CuePlayer interface {
	Play(cue audio.Cue)
}

// Option configures a Session
type Option func(*Session)

func WithClock(c playback.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithMetrics(m *metrics.Registry) Option {
	return func(s *Session) { s.metrics = m }
}

func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

func WithSound(p CuePlayer) Option {
	return func(s *Session) { s.sound = p }
}

// Session is safe for concurrent use
type Session struct {
	mu sync.Mutex

	board     *grid.Grid
	algorithm navigation.Algorithm
	interval  time.Duration
	mazeSeed  int64
	mazes     int64
	shown     bool // a visualization has been displayed since the last reset
	reachable bool

	cache     *navigation.ResultCache
	scheduler *playback.Scheduler

	clock    playback.Clock
	logger   logging.Logger
	metrics  *metrics.Registry
	listener Listener
	sound    CuePlayer
}

// New creates a session for cfg
func New(cfg Config, opts ...Option) (*Session, error) {
	board, err := grid.New(cfg.Rows, cfg.Cols, cfg.Start, cfg.Target)
	if err != nil {
		return nil, err
	}
	if _, err := navigation.ParseAlgorithm(cfg.Algorithm.String()); err != nil {
		return nil, err
	}

	s := &Session{
		board:     board,
		algorithm: cfg.Algorithm,
		interval:  max(cfg.Interval, 0),
		mazeSeed:  cfg.MazeSeed,
		cache:     navigation.NewResultCache(),
		logger:    logging.NewNopLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.clock == nil {
		s.clock = playback.NewSystemClock()
	}
	s.logger = s.logger.With(logging.Component("session"))

	s.scheduler = playback.NewScheduler(s.clock,
		playback.WithObserver(&runObserver{logger: s.logger, metrics: s.metrics}),
		playback.WithClearHook(func() {
			if s.listener != nil {
				s.listener.Cleared()
			}
		}),
	)
	return s, nil
}

// View is a point-in-time copy of the board for rendering
type View struct {
	Rows, Cols int
	Start      grid.Cell
	Target     grid.Cell
	Walls      grid.WallSet
	Algorithm  navigation.Algorithm
	Busy       bool
	Shown      bool
	Reachable  bool
}

// View returns a copy of the board state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Rows:      s.board.Rows,
		Cols:      s.board.Cols,
		Start:     s.board.Start,
		Target:    s.board.Target,
		Walls:     s.board.Walls.Clone(),
		Algorithm: s.algorithm,
		Busy:      s.scheduler.Busy(),
		Shown:     s.shown,
		Reachable: s.reachable,
	}
}

// Marks returns the revealed visited and path keys
func (s *Session) Marks() playback.Marks {
	return s.scheduler.Marks()
}

// Revealed reports the topmost revealed layer for c
func (s *Session) Revealed(c grid.Cell) (playback.RevealKind, bool) {
	return s.scheduler.Revealed(c.Key())
}

// Busy reports whether an animated visualization is running
func (s *Session) Busy() bool {
	return s.scheduler.Busy()
}

// ToggleWall adds or removes a wall at c; endpoints cannot become walls
func (s *Session) ToggleWall(c grid.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditLocked(c); err != nil {
		return err
	}
	if c == s.board.Start || c == s.board.Target {
		return fmt.Errorf("%w: wall on endpoint %s", ErrInvalidEdit, c)
	}

	if s.board.Walls.Has(c) {
		s.board.Walls.Remove(c)
	} else {
		s.board.Walls.Add(c)
	}
	s.logger.Debug("wall toggled", logging.Cell(c.Key()), logging.Bool("wall", s.board.Walls.Has(c)))
	return s.afterEditLocked()
}

// MoveStart relocates the start; walls and the target are refused
func (s *Session) MoveStart(c grid.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMoveLocked(c, s.board.Target); err != nil {
		return err
	}
	s.board.Start = c
	return s.afterEditLocked()
}

// MoveTarget relocates the target; walls and the start are refused
func (s *Session) MoveTarget(c grid.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMoveLocked(c, s.board.Start); err != nil {
		return err
	}
	s.board.Target = c
	return s.afterEditLocked()
}

// SetAlgorithm selects the search used by the next visualization
func (s *Session) SetAlgorithm(kind navigation.Algorithm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBusyLocked(); err != nil {
		return err
	}
	if _, err := navigation.ParseAlgorithm(kind.String()); err != nil {
		return err
	}
	if kind == s.algorithm {
		return nil
	}
	s.algorithm = kind
	s.logger.Info("algorithm selected", logging.Algorithm(kind.String()))
	return s.afterEditLocked()
}

// ClearBoard removes walls and every revealed mark
func (s *Session) ClearBoard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBusyLocked(); err != nil {
		return err
	}
	s.board.Walls = grid.NewWallSet()
	s.resetVisualizationLocked()
	s.logger.Info("board cleared")
	return nil
}

// ClearWalls removes walls, keeping a shown visualization up to date
func (s *Session) ClearWalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBusyLocked(); err != nil {
		return err
	}
	s.board.Walls = grid.NewWallSet()
	s.logger.Info("walls cleared")
	return s.afterEditLocked()
}

// GenerateMaze replaces the walls with a fresh maze and moves the endpoints
// to the top-left and bottom-right rooms
func (s *Session) GenerateMaze() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBusyLocked(); err != nil {
		return err
	}
	// Root and the bottom-right room need a 3x3 board
	if s.board.Rows < 3 || s.board.Cols < 3 {
		return fmt.Errorf("%w: %dx%d board has no room for maze endpoints",
			maze.ErrInvalidSize, s.board.Rows, s.board.Cols)
	}

	seed := s.mazeSeed
	if seed != 0 {
		seed += s.mazes
	}
	walls, err := maze.Generate(maze.Config{Rows: s.board.Rows, Cols: s.board.Cols, Seed: seed})
	if err != nil {
		return err
	}
	s.mazes++

	s.resetVisualizationLocked()
	s.board.Walls = walls
	s.board.Start = maze.Root
	s.board.Target = grid.Cell{Row: max(s.board.Rows-2, 0), Col: max(s.board.Cols-2, 0)}
	// Endpoints must stay open on degenerate boards where no room exists
	s.board.Walls.Remove(s.board.Start)
	s.board.Walls.Remove(s.board.Target)

	if s.metrics != nil {
		s.metrics.ObserveMaze(walls.Len())
	}
	s.logger.Info("maze generated", logging.Count(walls.Len()), logging.Any("seed", seed))
	s.cue(audio.CueMaze)
	return nil
}

// Visualize runs the selected search and animates the result
func (s *Session) Visualize() (playback.RunID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBusyLocked(); err != nil {
		return playback.RunID{}, err
	}

	res, err := s.searchLocked()
	if err != nil {
		return playback.RunID{}, err
	}

	reachable := res.Reachable
	listener := s.listener
	sound := s.sound
	s.shown = true
	s.reachable = reachable

	onReveal := func(key string, kind playback.RevealKind) {
		if listener != nil {
			listener.Revealed(key, kind)
		}
	}
	onComplete := func() {
		if sound != nil {
			if reachable {
				sound.Play(audio.CueComplete)
			} else {
				sound.Play(audio.CueTrapped)
			}
		}
		if listener != nil {
			listener.Completed(reachable)
		}
	}

	id := s.scheduler.PlayAnimated(res.VisitedCells(), res.Route(), s.interval, onReveal, onComplete)
	s.logger.Info("visualization started",
		logging.RunID(id.String()),
		logging.Algorithm(res.Algorithm.String()),
		logging.Duration("interval", s.interval))
	return id, nil
}

// Stop halts a running animation, keeping what was already revealed
func (s *Session) Stop() {
	s.scheduler.Cancel()
}

// Close stops playback
func (s *Session) Close() {
	s.scheduler.Cancel()
}

func (s *Session) checkBusyLocked() error {
	if s.scheduler.Busy() {
		s.cue(audio.CueRejected)
		return ErrBusy
	}
	return nil
}

func (s *Session) checkEditLocked(c grid.Cell) error {
	if err := s.checkBusyLocked(); err != nil {
		return err
	}
	if !s.board.InBounds(c) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidEdit, grid.ErrOutOfBounds, c)
	}
	return nil
}

func (s *Session) checkMoveLocked(c, other grid.Cell) error {
	if err := s.checkEditLocked(c); err != nil {
		return err
	}
	if s.board.IsWall(c) {
		return fmt.Errorf("%w: %s is a wall", ErrInvalidEdit, c)
	}
	if c == other {
		return fmt.Errorf("%w: %s is occupied by the other endpoint", ErrInvalidEdit, c)
	}
	return nil
}

// afterEditLocked refreshes a shown visualization as a snapshot
func (s *Session) afterEditLocked() error {
	if !s.shown {
		return nil
	}
	res, err := s.searchLocked()
	if err != nil {
		return err
	}
	s.reachable = res.Reachable

	var onReveal playback.RevealFunc
	if s.listener != nil {
		onReveal = s.listener.Revealed
	}
	s.scheduler.PlaySnapshot(res.VisitedCells(), res.Route(), onReveal)
	return nil
}

func (s *Session) resetVisualizationLocked() {
	s.scheduler.Clear()
	s.cache.Reset()
	s.shown = false
	s.reachable = false
}

// searchLocked runs the search through the cache, recording fresh runs
func (s *Session) searchLocked() (*navigation.Result, error) {
	algo := s.algorithm.String()
	op := logging.StartTimer(s.logger, "search", logging.Algorithm(algo))

	res, ran, err := s.cache.Update(s.algorithm, s.board)
	if err != nil {
		op.EndError(err)
		return nil, err
	}
	if !ran {
		return res, nil
	}

	route := len(res.Route())
	elapsed := op.End(
		logging.Int("visited", len(res.Visited)),
		logging.Int("route", route),
		logging.Bool("reachable", res.Reachable),
	)
	if s.metrics != nil {
		s.metrics.ObserveSearch(algo, res.Reachable, len(res.Visited), route, elapsed)
	}
	return res, nil
}

func (s *Session) cue(c audio.Cue) {
	if s.sound != nil {
		s.sound.Play(c)
	}
}

// runObserver forwards playback lifecycle to logs and metrics
type runObserver struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

func (o *runObserver) RunStarted(id playback.RunID, mode playback.Mode, visits, route int) {
	o.logger.Debug("playback started",
		logging.RunID(id.String()),
		logging.String("mode", mode.String()),
		logging.Int("visits", visits),
		logging.Int("route", route))
	if o.metrics != nil {
		o.metrics.PlaybackStarted(mode.String())
	}
}

func (o *runObserver) RunCompleted(id playback.RunID, mode playback.Mode) {
	o.logger.Debug("playback completed", logging.RunID(id.String()), logging.String("mode", mode.String()))
	if o.metrics != nil {
		o.metrics.PlaybackCompleted()
	}
}

func (o *runObserver) RunCancelled(id playback.RunID) {
	o.logger.Info("playback cancelled", logging.RunID(id.String()))
	if o.metrics != nil {
		o.metrics.PlaybackCancelled()
	}
}
