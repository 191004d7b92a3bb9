package navigation

import "github.com/lixenwraith/pathviz/grid"

// searchAStar runs A* with the Manhattan heuristic, consistent on a 4-connected
// unit-cost grid, so the first finalization of the target is optimal
func searchAStar(g *grid.Grid) *Result {
	target := g.Target
	nodes := newNodes(g, func(c grid.Cell) int { return grid.Manhattan(c, target) })
	res := newResult(AStar, g, nodes)

	closed := make(map[grid.Cell]struct{})

	startIdx := g.Start.Index(g.Cols)
	nodes[startIdx].Distance = 0
	nodes[startIdx].discovered = true

	open := NewFrontier(func(idx int) int { return nodes[idx].Priority() })
	open.Insert(startIdx)

	neighbors := make([]grid.Cell, 0, 4)
	for open.Len() > 0 {
		curr := &nodes[mustExtract(open)]

		if _, done := closed[curr.Cell]; done {
			continue
		}
		if g.IsWall(curr.Cell) {
			continue
		}

		closed[curr.Cell] = struct{}{}
		curr.Visited = true
		res.Visited = append(res.Visited, curr)

		if curr.Cell == target {
			return res.finish(true)
		}

		neighbors = g.Neighbors(neighbors[:0], curr.Cell)
		for _, nc := range neighbors {
			if _, done := closed[nc]; done || g.IsWall(nc) {
				continue
			}
			idx := nc.Index(g.Cols)
			next := &nodes[idx]
			tentative := curr.Distance + 1
			if tentative < next.Distance || !next.discovered {
				next.Distance = tentative
				next.Predecessor = curr
				next.discovered = true
				open.Insert(idx)
			}
		}
	}

	return res.finish(false)
}
