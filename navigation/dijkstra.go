package navigation

import "github.com/lixenwraith/pathviz/grid"

// searchDijkstra runs uniform-cost search from g.Start to g.Target
// Walls are popped and dropped, never finalized. Exhausting the frontier, or
// reaching a node still at Infinity, means the target is trapped.
func searchDijkstra(g *grid.Grid) *Result {
	nodes := newNodes(g, nil)
	res := newResult(Dijkstra, g, nodes)

	startIdx := g.Start.Index(g.Cols)
	nodes[startIdx].Distance = 0

	frontier := NewFrontier(func(idx int) int { return nodes[idx].Distance })
	frontier.Insert(startIdx)

	neighbors := make([]grid.Cell, 0, 4)
	for frontier.Len() > 0 {
		curr := &nodes[mustExtract(frontier)]

		if curr.Visited || g.IsWall(curr.Cell) {
			continue
		}
		if curr.Distance == Infinity {
			break
		}

		curr.Visited = true
		res.Visited = append(res.Visited, curr)

		if curr.Cell == g.Target {
			return res.finish(true)
		}

		neighbors = g.Neighbors(neighbors[:0], curr.Cell)
		for _, nc := range neighbors {
			idx := nc.Index(g.Cols)
			next := &nodes[idx]
			if next.Visited || g.IsWall(nc) {
				continue
			}
			if d := curr.Distance + 1; d < next.Distance {
				next.Distance = d
				next.Predecessor = curr
				frontier.Insert(idx)
			}
		}
	}

	return res.finish(false)
}
