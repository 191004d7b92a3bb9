// Package navigation implements the shortest-path engine behind the visualizer.
//
// It exposes:
//
//   - Search: run Dijkstra or A* over a grid.Grid and get a Result holding the
//     finalization order (the replay timeline) and the terminal node.
//   - Reconstruct: turn a terminal node into a start-to-terminal route.
//   - Frontier: the index-less min-heap both searches share.
//   - ResultCache: skip re-searching when the grid has not changed.
//
// Every call allocates its own node set; nothing is shared between runs.
package navigation
