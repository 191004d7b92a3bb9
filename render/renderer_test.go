package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/playback"
	"github.com/lixenwraith/pathviz/session"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func testView() session.View {
	return session.View{
		Rows:   3,
		Cols:   6,
		Start:  grid.Cell{Row: 1, Col: 0},
		Target: grid.Cell{Row: 1, Col: 5},
		Walls:  grid.NewWallSet(grid.Cell{Row: 0, Col: 3}, grid.Cell{Row: 1, Col: 0}),
		Shown:  true,
	}
}

func testMarks() playback.Marks {
	return playback.Marks{
		Visited: map[string]struct{}{"1_1": {}, "1_2": {}, "2_2": {}},
		Path:    map[string]struct{}{"1_1": {}},
	}
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

// TestCellAppearanceLayering verifies endpoint > wall > path > visited > empty
func TestCellAppearanceLayering(t *testing.T) {
	v := testView()
	m := testMarks()

	tests := []struct {
		cell grid.Cell
		want rune
	}{
		{grid.Cell{Row: 1, Col: 0}, GlyphStart},
		{grid.Cell{Row: 1, Col: 5}, GlyphTarget},
		{grid.Cell{Row: 0, Col: 3}, GlyphWall},
		{grid.Cell{Row: 1, Col: 1}, GlyphPath},
		{grid.Cell{Row: 2, Col: 2}, GlyphVisited},
		{grid.Cell{Row: 2, Col: 4}, GlyphEmpty},
	}
	for _, tt := range tests {
		got, _ := CellAppearance(v, m, tt.cell)
		if got != tt.want {
			t.Errorf("cell %s: got %q, want %q", tt.cell, got, tt.want)
		}
	}
}

// TestDrawBoard verifies the grid lands below the title row
func TestDrawBoard(t *testing.T) {
	screen := newScreen(t, 120, 10)
	r := NewRenderer(screen)

	r.Draw(Frame{View: testView(), Marks: testMarks(), Cursor: grid.Cell{Row: 2, Col: 5}})

	if got := runeAt(screen, 0, gridTop+1); got != GlyphStart {
		t.Errorf("start: got %q", got)
	}
	if got := runeAt(screen, 3, gridTop); got != GlyphWall {
		t.Errorf("wall: got %q", got)
	}
	if got := runeAt(screen, 1, gridTop+1); got != GlyphPath {
		t.Errorf("path: got %q", got)
	}

	_, _, style, _ := screen.GetContent(5, gridTop+2)
	if _, bg, _ := style.Decompose(); bg != RgbCursor {
		t.Errorf("cursor background: got %v", bg)
	}
}

// TestDrawStatus verifies the status row reflects session state and messages
func TestDrawStatus(t *testing.T) {
	screen := newScreen(t, 120, 10)
	r := NewRenderer(screen)
	v := testView()

	statusRow := func() string {
		var sb strings.Builder
		for x := 0; x < v.Cols; x++ {
			sb.WriteRune(runeAt(screen, x, gridTop+v.Rows))
		}
		return sb.String()
	}

	v.Reachable = true
	r.Draw(Frame{View: v, Marks: testMarks()})
	if got := statusRow(); !strings.HasPrefix(got, " ROUTE") {
		t.Errorf("status: got %q", got)
	}

	v.Busy = true
	r.Draw(Frame{View: v, Marks: testMarks()})
	if got := statusRow(); !strings.HasPrefix(got, " VISUA") {
		t.Errorf("busy status: got %q", got)
	}

	r.Draw(Frame{View: v, Message: "busy"})
	if got := statusRow(); !strings.HasPrefix(got, " busy") {
		t.Errorf("message status: got %q", got)
	}
}

// TestDrawTooSmall verifies a notice replaces the board on small terminals
func TestDrawTooSmall(t *testing.T) {
	screen := newScreen(t, 4, 2)
	r := NewRenderer(screen)
	v := testView()

	if r.Fits(v) {
		t.Fatal("expected board not to fit")
	}
	r.Draw(Frame{View: v})
	if got := runeAt(screen, 0, 0); got != 't' {
		t.Errorf("expected notice, got %q", got)
	}
}
