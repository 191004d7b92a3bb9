// Package render draws the board and status bar onto a tcell screen
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/playback"
	"github.com/lixenwraith/pathviz/session"
)

// Board layout: title row, grid rows, status row, legend row
const (
	gridTop     = 1
	chromeLines = 3
)

// Frame is everything drawn in one pass
type Frame struct {
	View    session.View
	Marks   playback.Marks
	Cursor  grid.Cell
	Message string // last error or notice, shown in the status bar
}

// Renderer draws frames; not safe for concurrent use
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer on screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Fits reports whether the screen can hold the whole board
func (r *Renderer) Fits(v session.View) bool {
	w, h := r.screen.Size()
	return w >= v.Cols && h >= v.Rows+chromeLines
}

// Draw renders f and shows the screen
func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()

	if !r.Fits(f.View) {
		w, h := r.screen.Size()
		drawText(r.screen, 0, 0, w, fmt.Sprintf("terminal %dx%d too small, need %dx%d",
			w, h, f.View.Cols, f.View.Rows+chromeLines), styleLegend)
		r.screen.Show()
		return
	}

	r.drawTitle(f)
	r.drawBoard(f)
	r.drawStatus(f)
	r.drawLegend(f.View.Rows + gridTop + 1)
	r.screen.Show()
}

func (r *Renderer) drawTitle(f Frame) {
	title := "Pathfinding Visualizer - " + f.View.Algorithm.Label()
	drawText(r.screen, 0, 0, f.View.Cols, title, styleLegend.Bold(true))
}

func (r *Renderer) drawBoard(f Frame) {
	v := f.View
	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			c := grid.Cell{Row: row, Col: col}
			ch, style := CellAppearance(v, f.Marks, c)
			if c == f.Cursor {
				style = style.Background(RgbCursor)
			}
			r.screen.SetContent(col, gridTop+row, ch, nil, style)
		}
	}
}

// CellAppearance picks the glyph and style of c
// Endpoints draw over walls and marks, path over visited
func CellAppearance(v session.View, marks playback.Marks, c grid.Cell) (rune, tcell.Style) {
	switch {
	case c == v.Start:
		return GlyphStart, styleStart
	case c == v.Target:
		return GlyphTarget, styleTarget
	case v.Walls.Has(c):
		return GlyphWall, styleWall
	}
	key := c.Key()
	if _, ok := marks.Path[key]; ok {
		return GlyphPath, stylePath
	}
	if _, ok := marks.Visited[key]; ok {
		return GlyphVisited, styleVisited
	}
	return GlyphEmpty, styleEmpty
}

func (r *Renderer) drawStatus(f Frame) {
	v := f.View
	y := gridTop + v.Rows

	bg := RgbStatusIdleBg
	state := "READY"
	switch {
	case f.Message != "":
		bg = RgbStatusErrBg
	case v.Busy:
		bg = RgbStatusBusyBg
		state = "VISUALIZING"
	case v.Shown && !v.Reachable:
		state = "TRAPPED"
	case v.Shown:
		state = fmt.Sprintf("ROUTE %d", len(f.Marks.Path))
	}
	style := tcell.StyleDefault.Foreground(RgbStatusText).Background(bg)

	text := fmt.Sprintf(" %s | %s | cursor %s | visited %d | walls %d",
		state, v.Algorithm, f.Cursor, len(f.Marks.Visited), v.Walls.Len())
	if f.Message != "" {
		text = " " + f.Message
	}
	for x := 0; x < v.Cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
	drawText(r.screen, 0, y, v.Cols, text, style)
}

func (r *Renderer) drawLegend(y int) {
	const legend = "arrows move  space wall  s start  t target  v run  a algo  m maze  w walls  c clear  q quit"
	w, _ := r.screen.Size()
	drawText(r.screen, 0, y, w, legend, styleLegend)
}

// drawText writes s from (x, y), clipped to width cells
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	i := 0
	for _, ch := range s {
		if i >= width {
			return
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
