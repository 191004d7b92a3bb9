package navigation

import (
	"math"

	"github.com/lixenwraith/pathviz/grid"
)

// Infinity marks an undiscovered distance
const Infinity = math.MaxInt

// Node is the per-cell state of one search run
type Node struct {
	Cell        grid.Cell
	Distance    int   // Cost from start, Infinity until discovered
	Heuristic   int   // Manhattan estimate to target, zero for Dijkstra
	Predecessor *Node // Nil for start and undiscovered nodes
	Visited     bool  // Finalized

	discovered bool
}

// Priority returns Distance + Heuristic, saturating at Infinity
func (n *Node) Priority() int {
	if n.Distance == Infinity {
		return Infinity
	}
	return n.Distance + n.Heuristic
}

// newNodes allocates one fresh node per grid cell, row-major
func newNodes(g *grid.Grid, heuristic func(grid.Cell) int) []Node {
	nodes := make([]Node, g.Size())
	for i := range nodes {
		c := grid.CellAt(i, g.Cols)
		nodes[i] = Node{Cell: c, Distance: Infinity}
		if heuristic != nil {
			nodes[i].Heuristic = heuristic(c)
		}
	}
	return nodes
}

// Reconstruct follows predecessor links from terminal back to the start
// A start terminal yields a single-cell route; success is the caller's call
func Reconstruct(terminal *Node) []grid.Cell {
	if terminal == nil {
		return nil
	}

	var route []grid.Cell
	for n := terminal; n != nil; n = n.Predecessor {
		route = append(route, n.Cell)
	}

	// reverse route
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}
