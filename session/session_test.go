package session

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pathviz/audio"
	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/maze"
	"github.com/lixenwraith/pathviz/metrics"
	"github.com/lixenwraith/pathviz/navigation"
	"github.com/lixenwraith/pathviz/playback"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type listener struct {
	mu        sync.Mutex
	revealed  int
	cleared   int
	completed []bool
}

func (l *listener) Revealed(string, playback.RevealKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revealed++
}

func (l *listener) Cleared() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleared++
}

func (l *listener) Completed(reachable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.completed = append(l.completed, reachable)
}

type sound struct {
	mu   sync.Mutex
	cues []audio.Cue
}

func (s *sound) Play(c audio.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cues = append(s.cues, c)
}

type fixture struct {
	session  *Session
	clock    *playback.ManualClock
	listener *listener
	sound    *sound
	metrics  *metrics.Registry
}

// smallConfig is a 3x5 open board with the endpoints on the middle row ends
func smallConfig() Config {
	return Config{
		Rows:      3,
		Cols:      5,
		Start:     grid.Cell{Row: 1, Col: 0},
		Target:    grid.Cell{Row: 1, Col: 4},
		Interval:  10 * time.Millisecond,
		Algorithm: navigation.Dijkstra,
	}
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		clock:    playback.NewManualClock(epoch),
		listener: &listener{},
		sound:    &sound{},
		metrics:  metrics.NewRegistry(),
	}
	s, err := New(cfg,
		WithClock(f.clock),
		WithListener(f.listener),
		WithSound(f.sound),
		WithMetrics(f.metrics),
	)
	require.NoError(t, err)
	f.session = s
	return f
}

func TestDefaultConfig(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	v := f.session.View()

	assert.Equal(t, 27, v.Rows)
	assert.Equal(t, 85, v.Cols)
	assert.Equal(t, grid.Cell{Row: 14, Col: 10}, v.Start)
	assert.Equal(t, grid.Cell{Row: 14, Col: 74}, v.Target)
	assert.Equal(t, navigation.Dijkstra, v.Algorithm)
	assert.False(t, v.Busy)
	assert.Zero(t, v.Walls.Len())
}

func TestConfigForNarrowBoard(t *testing.T) {
	cfg := ConfigFor(5, 21)
	assert.Equal(t, grid.Cell{Row: 3, Col: 5}, cfg.Start)
	assert.Equal(t, grid.Cell{Row: 3, Col: 15}, cfg.Target)

	_, err := New(ConfigFor(3, 3))
	assert.NoError(t, err)
}

func TestNewRejectsInvalidBoard(t *testing.T) {
	cfg := smallConfig()
	cfg.Target = grid.Cell{Row: 9, Col: 9}
	_, err := New(cfg)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	cfg = smallConfig()
	cfg.Algorithm = navigation.Algorithm(7)
	_, err = New(cfg)
	assert.ErrorIs(t, err, navigation.ErrUnknownAlgorithm)
}

func TestEditRules(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session

	assert.ErrorIs(t, s.ToggleWall(grid.Cell{Row: 1, Col: 0}), ErrInvalidEdit)
	assert.ErrorIs(t, s.ToggleWall(grid.Cell{Row: 1, Col: 4}), ErrInvalidEdit)

	wall := grid.Cell{Row: 0, Col: 2}
	require.NoError(t, s.ToggleWall(wall))
	assert.True(t, s.View().Walls.Has(wall))

	assert.ErrorIs(t, s.MoveStart(wall), ErrInvalidEdit)
	assert.ErrorIs(t, s.MoveStart(grid.Cell{Row: 1, Col: 4}), ErrInvalidEdit)
	assert.ErrorIs(t, s.MoveTarget(grid.Cell{Row: 1, Col: 0}), ErrInvalidEdit)

	err := s.MoveTarget(grid.Cell{Row: 3, Col: 0})
	assert.ErrorIs(t, err, ErrInvalidEdit)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	require.NoError(t, s.MoveStart(grid.Cell{Row: 2, Col: 0}))
	require.NoError(t, s.MoveTarget(grid.Cell{Row: 0, Col: 4}))
	v := s.View()
	assert.Equal(t, grid.Cell{Row: 2, Col: 0}, v.Start)
	assert.Equal(t, grid.Cell{Row: 0, Col: 4}, v.Target)

	require.NoError(t, s.ToggleWall(wall))
	assert.False(t, s.View().Walls.Has(wall))

	// Nothing shown yet, so edits reveal nothing
	assert.Empty(t, s.Marks().Visited)
}

func TestVisualizeAnimates(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session

	_, err := s.Visualize()
	require.NoError(t, err)
	assert.True(t, s.Busy())

	// Every edit is refused while animating
	assert.ErrorIs(t, s.ToggleWall(grid.Cell{Row: 0, Col: 2}), ErrBusy)
	assert.ErrorIs(t, s.MoveStart(grid.Cell{Row: 0, Col: 0}), ErrBusy)
	assert.ErrorIs(t, s.MoveTarget(grid.Cell{Row: 0, Col: 4}), ErrBusy)
	assert.ErrorIs(t, s.ClearBoard(), ErrBusy)
	assert.ErrorIs(t, s.ClearWalls(), ErrBusy)
	assert.ErrorIs(t, s.GenerateMaze(), ErrBusy)
	assert.ErrorIs(t, s.SetAlgorithm(navigation.AStar), ErrBusy)
	_, err = s.Visualize()
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PlaybackBusy))

	f.clock.Advance(20 * time.Millisecond)
	assert.True(t, s.Busy())
	assert.Len(t, s.Marks().Visited, 3)

	f.clock.Advance(time.Second)
	assert.False(t, s.Busy())
	assert.Equal(t, []bool{true}, f.listener.completed)

	marks := s.Marks()
	assert.Len(t, marks.Path, 5)
	assert.Contains(t, marks.Path, "1_0")
	assert.Contains(t, marks.Path, "1_4")
	assert.Equal(t, len(marks.Visited)+len(marks.Path), f.listener.revealed)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SearchesTotal.WithLabelValues("dijkstra", "reached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PlaybackRunsTotal.WithLabelValues("animated")))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.PlaybackBusy))

	f.sound.mu.Lock()
	assert.Contains(t, f.sound.cues, audio.CueRejected)
	assert.Equal(t, audio.CueComplete, f.sound.cues[len(f.sound.cues)-1])
	f.sound.mu.Unlock()
}

func TestEditAfterVisualizeRevisualizesSnapshot(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session

	_, err := s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	require.False(t, s.Busy())

	require.NoError(t, s.ToggleWall(grid.Cell{Row: 1, Col: 2}))

	// Snapshot: no animation, marks replaced at once
	assert.False(t, s.Busy())
	assert.Zero(t, f.clock.Pending())
	marks := s.Marks()
	assert.NotContains(t, marks.Visited, "1_2")
	assert.NotContains(t, marks.Path, "1_2")
	assert.Len(t, marks.Path, 7)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PlaybackRunsTotal.WithLabelValues("snapshot")))

	// Algorithm switch refreshes with the new search
	require.NoError(t, s.SetAlgorithm(navigation.AStar))
	assert.Equal(t, navigation.AStar, s.View().Algorithm)
	assert.Len(t, s.Marks().Path, 7)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SearchesTotal.WithLabelValues("astar", "reached")))

	// Moving the target onto the old route rebuilds it
	require.NoError(t, s.MoveTarget(grid.Cell{Row: 1, Col: 1}))
	marks = s.Marks()
	assert.Len(t, marks.Path, 2)
	assert.Contains(t, marks.Path, "1_1")
}

func TestTrappedTarget(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session
	for row := 0; row < 3; row++ {
		require.NoError(t, s.ToggleWall(grid.Cell{Row: row, Col: 3}))
	}

	_, err := s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Second)

	assert.Equal(t, []bool{false}, f.listener.completed)
	marks := s.Marks()
	assert.Len(t, marks.Visited, 9)
	assert.Empty(t, marks.Path)
	assert.False(t, s.View().Reachable)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SearchesTotal.WithLabelValues("dijkstra", "trapped")))

	f.sound.mu.Lock()
	assert.Equal(t, audio.CueTrapped, f.sound.cues[len(f.sound.cues)-1])
	f.sound.mu.Unlock()
}

func TestStopKeepsRevealedCells(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session

	_, err := s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(30 * time.Millisecond)
	s.Stop()

	assert.False(t, s.Busy())
	assert.Len(t, s.Marks().Visited, 4)
	f.clock.Advance(time.Second)
	assert.Len(t, s.Marks().Visited, 4)
	assert.Empty(t, f.listener.completed)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PlaybackCancelledTotal))
}

func TestGenerateMaze(t *testing.T) {
	cfg := ConfigFor(7, 9)
	cfg.MazeSeed = 42
	f := newFixture(t, cfg)
	s := f.session

	_, err := s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Minute)

	require.NoError(t, s.GenerateMaze())
	v := s.View()
	assert.Equal(t, grid.Cell{Row: 1, Col: 1}, v.Start)
	assert.Equal(t, grid.Cell{Row: 5, Col: 7}, v.Target)
	// 51 initial walls around 12 rooms, 11 carved
	assert.Equal(t, 40, v.Walls.Len())
	assert.False(t, v.Shown)
	assert.Empty(t, s.Marks().Visited)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MazesGeneratedTotal))

	// Every room of a perfect maze is connected
	_, err = s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	assert.Equal(t, []bool{true, true}, f.listener.completed)

	require.NoError(t, s.GenerateMaze())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.MazesGeneratedTotal))
}

func TestGenerateMazeRefusesNarrowBoard(t *testing.T) {
	cfg := ConfigFor(1, 6)
	f := newFixture(t, cfg)
	s := f.session
	before := s.View()

	err := s.GenerateMaze()
	assert.ErrorIs(t, err, maze.ErrInvalidSize)

	v := s.View()
	assert.Equal(t, before.Start, v.Start)
	assert.Equal(t, before.Target, v.Target)
	assert.Zero(t, v.Walls.Len())
	assert.Zero(t, testutil.ToFloat64(f.metrics.MazesGeneratedTotal))

	// Board remains usable
	_, err = s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	assert.Equal(t, []bool{true}, f.listener.completed)
}

func TestClearBoardAndWalls(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session
	require.NoError(t, s.ToggleWall(grid.Cell{Row: 0, Col: 1}))
	require.NoError(t, s.ToggleWall(grid.Cell{Row: 1, Col: 2}))

	_, err := s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Second)

	require.NoError(t, s.ClearWalls())
	assert.Zero(t, s.View().Walls.Len())
	assert.Len(t, s.Marks().Path, 5)

	require.NoError(t, s.ToggleWall(grid.Cell{Row: 0, Col: 1}))
	require.NoError(t, s.ClearBoard())
	v := s.View()
	assert.Zero(t, v.Walls.Len())
	assert.False(t, v.Shown)
	assert.Empty(t, s.Marks().Visited)
	assert.Empty(t, s.Marks().Path)

	// Without a shown visualization edits stay silent
	require.NoError(t, s.ToggleWall(grid.Cell{Row: 0, Col: 1}))
	assert.Empty(t, s.Marks().Visited)
}

func TestCachedSearchIsNotRecountedOnRevisualize(t *testing.T) {
	f := newFixture(t, smallConfig())
	s := f.session

	_, err := s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	_, err = s.Visualize()
	require.NoError(t, err)
	f.clock.Advance(time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SearchesTotal.WithLabelValues("dijkstra", "reached")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.PlaybackRunsTotal.WithLabelValues("animated")))
}
