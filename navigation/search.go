package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/pathviz/grid"
)

// ErrUnknownAlgorithm is returned for an unrecognized algorithm selector
var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// Algorithm selects a search strategy
type Algorithm int

const (
	Dijkstra Algorithm = iota
	AStar
)

func (a Algorithm) String() string {
	switch a {
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	default:
		return "unknown"
	}
}

// Label returns the human-readable name shown by front-ends
func (a Algorithm) Label() string {
	switch a {
	case Dijkstra:
		return "Dijkstra's Algorithm"
	case AStar:
		return "A* Algorithm"
	default:
		return "Unknown"
	}
}

// ParseAlgorithm accepts "dijkstra", "astar", "a_star" and "a*", case-insensitive
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a_star", "a*":
		return AStar, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Result is the outcome of one search invocation, immutable once returned
type Result struct {
	Algorithm Algorithm
	Visited   []*Node // Finalization order, the replay timeline
	Terminal  *Node   // Last finalized node, nil when even start was blocked
	Reachable bool    // Terminal is the target

	nodes []Node
	cols  int
}

func newResult(kind Algorithm, g *grid.Grid, nodes []Node) *Result {
	return &Result{
		Algorithm: kind,
		Visited:   make([]*Node, 0, 64),
		nodes:     nodes,
		cols:      g.Cols,
	}
}

func (r *Result) finish(reachable bool) *Result {
	if n := len(r.Visited); n > 0 {
		r.Terminal = r.Visited[n-1]
	}
	r.Reachable = reachable
	return r
}

// VisitedCells returns the visitation order as cells
func (r *Result) VisitedCells() []grid.Cell {
	cells := make([]grid.Cell, len(r.Visited))
	for i, n := range r.Visited {
		cells[i] = n.Cell
	}
	return cells
}

// Route returns the start-to-target route, nil when the target is trapped
func (r *Result) Route() []grid.Cell {
	if !r.Reachable {
		return nil
	}
	return Reconstruct(r.Terminal)
}

// NodeAt returns the search node for c, nil when c is off the searched grid
func (r *Result) NodeAt(c grid.Cell) *Node {
	if c.Row < 0 || c.Col < 0 || c.Col >= r.cols {
		return nil
	}
	idx := c.Index(r.cols)
	if idx >= len(r.nodes) {
		return nil
	}
	return &r.nodes[idx]
}

// Search validates g and runs the selected algorithm
// An unreachable target is a normal result (Reachable false), not an error
func Search(kind Algorithm, g *grid.Grid) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	switch kind {
	case Dijkstra:
		return searchDijkstra(g), nil
	case AStar:
		return searchAStar(g), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(kind))
	}
}
