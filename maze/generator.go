package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/pathviz/grid"
)

// ErrInvalidSize is returned for non-positive dimensions
var ErrInvalidSize = errors.New("invalid maze size")

// Root is the lattice room the backtracker starts from
var Root = grid.Cell{Row: 1, Col: 1}

type Config struct {
	Rows, Cols int
	Seed       int64 // Optional (0 = Random)
}

// Generate builds a perfect maze as a wall set
// Odd/odd cells are rooms, every other cell starts as a wall; a randomized
// depth-first walk from Root knocks out the single wall between each room and
// the unvisited room it moves to. Grids smaller than 3x3 come back degenerate.
func Generate(cfg Config) (grid.WallSet, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Rows, cfg.Cols)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	walls := initialWalls(cfg.Rows, cfg.Cols)
	iterativeBacktracker(walls, cfg.Rows, cfg.Cols, rng)
	return walls, nil
}

// RoomCount returns the number of lattice rooms a rows x cols maze carves
func RoomCount(rows, cols int) int {
	return (rows / 2) * (cols / 2)
}

// initialWalls marks every cell on an even row or an even column
func initialWalls(rows, cols int) grid.WallSet {
	walls := make(grid.WallSet, rows*cols-RoomCount(rows, cols))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r%2 == 0 || c%2 == 0 {
				walls.Add(grid.Cell{Row: r, Col: c})
			}
		}
	}
	return walls
}

// Lattice steps in enumeration order: up, down, left, right
var jumps = [4]grid.Cell{{Row: -2}, {Row: 2}, {Col: -2}, {Col: 2}}

func iterativeBacktracker(walls grid.WallSet, rows, cols int, rng *rand.Rand) {
	if rows <= Root.Row || cols <= Root.Col {
		return
	}

	visited := make([]bool, rows*cols)
	visited[Root.Index(cols)] = true

	stack := []grid.Cell{Root}
	candidates := make([]grid.Cell, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumps {
			n := grid.Cell{Row: curr.Row + d.Row, Col: curr.Col + d.Col}
			if n.Row >= 0 && n.Row < rows && n.Col >= 0 && n.Col < cols && !visited[n.Index(cols)] {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		visited[next.Index(cols)] = true
		walls.Remove(Between(curr, next))
		stack = append(stack, next)
	}
}

// Between returns the wall cell separating two lattice-adjacent rooms
func Between(a, b grid.Cell) grid.Cell {
	return grid.Cell{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}
