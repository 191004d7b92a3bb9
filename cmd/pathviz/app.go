package main

import (
	"errors"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/navigation"
	"github.com/lixenwraith/pathviz/playback"
	"github.com/lixenwraith/pathviz/render"
	"github.com/lixenwraith/pathviz/session"
)

// screenListener turns playback output into redraw requests
// At most one redraw interrupt is queued at a time
type screenListener struct {
	screen  tcell.Screen
	pending atomic.Bool
}

func newScreenListener(screen tcell.Screen) *screenListener {
	return &screenListener{screen: screen}
}

func (l *screenListener) Revealed(string, playback.RevealKind) { l.notify() }
func (l *screenListener) Cleared()                             { l.notify() }
func (l *screenListener) Completed(bool)                       { l.notify() }

func (l *screenListener) notify() {
	if l.pending.CompareAndSwap(false, true) {
		if err := l.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
			l.pending.Store(false)
		}
	}
}

// app is the keyboard-driven front-end state
type app struct {
	screen   tcell.Screen
	session  *session.Session
	renderer *render.Renderer
	redraw   *screenListener
	cursor   grid.Cell
	message  string
}

func newApp(screen tcell.Screen, sess *session.Session, redraw *screenListener) *app {
	return &app{
		screen:   screen,
		session:  sess,
		renderer: render.NewRenderer(screen),
		redraw:   redraw,
		cursor:   sess.View().Start,
	}
}

func (a *app) loop() {
	a.draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !a.handleKey(ev) {
				return
			}
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			// Cleared before drawing so reveals during the draw queue another pass
			a.redraw.pending.Store(false)
		}
		a.draw()
	}
}

func (a *app) draw() {
	a.renderer.Draw(render.Frame{
		View:    a.session.View(),
		Marks:   a.session.Marks(),
		Cursor:  a.cursor,
		Message: a.message,
	})
}

// handleKey applies one key press, false means quit
func (a *app) handleKey(ev *tcell.EventKey) bool {
	a.message = ""

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.moveCursor(-1, 0)
	case tcell.KeyDown:
		a.moveCursor(1, 0)
	case tcell.KeyLeft:
		a.moveCursor(0, -1)
	case tcell.KeyRight:
		a.moveCursor(0, 1)
	case tcell.KeyEnter:
		a.report(a.session.ToggleWall(a.cursor))
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		a.moveCursor(0, -1)
	case 'j':
		a.moveCursor(1, 0)
	case 'k':
		a.moveCursor(-1, 0)
	case 'l':
		a.moveCursor(0, 1)
	case ' ':
		a.report(a.session.ToggleWall(a.cursor))
	case 's':
		a.report(a.session.MoveStart(a.cursor))
	case 't':
		a.report(a.session.MoveTarget(a.cursor))
	case 'v':
		_, err := a.session.Visualize()
		a.report(err)
	case 'x':
		a.session.Stop()
	case 'a':
		a.report(a.session.SetAlgorithm(nextAlgorithm(a.session.View().Algorithm)))
	case 'm':
		err := a.session.GenerateMaze()
		if err == nil {
			a.cursor = a.session.View().Start
		}
		a.report(err)
	case 'w':
		a.report(a.session.ClearWalls())
	case 'c':
		a.report(a.session.ClearBoard())
	}
	return true
}

func (a *app) moveCursor(dr, dc int) {
	v := a.session.View()
	a.cursor.Row = min(max(a.cursor.Row+dr, 0), v.Rows-1)
	a.cursor.Col = min(max(a.cursor.Col+dc, 0), v.Cols-1)
}

func (a *app) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrBusy):
		a.message = "busy: wait for the visualization to finish or press x"
	default:
		a.message = err.Error()
	}
}

func nextAlgorithm(a navigation.Algorithm) navigation.Algorithm {
	if a == navigation.Dijkstra {
		return navigation.AStar
	}
	return navigation.Dijkstra
}
