package maze

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pathviz/grid"
)

// openCells lists every non-wall cell
func openCells(walls grid.WallSet, rows, cols int) []grid.Cell {
	var open []grid.Cell
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if !walls.Has(cell) {
				open = append(open, cell)
			}
		}
	}
	return open
}

// reachable flood-fills open cells from Root
func reachable(walls grid.WallSet, rows, cols int) map[grid.Cell]bool {
	seen := map[grid.Cell]bool{Root: true}
	queue := []grid.Cell{Root}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, d := range grid.Cardinal {
			n := grid.Cell{Row: curr.Row + d.Row, Col: curr.Col + d.Col}
			if n.Row < 0 || n.Row >= rows || n.Col < 0 || n.Col >= cols {
				continue
			}
			if walls.Has(n) || seen[n] {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// openEdges counts adjacent pairs of open cells
func openEdges(walls grid.WallSet, rows, cols int) int {
	edges := 0
	for _, c := range openCells(walls, rows, cols) {
		right := grid.Cell{Row: c.Row, Col: c.Col + 1}
		if right.Col < cols && !walls.Has(right) {
			edges++
		}
		down := grid.Cell{Row: c.Row + 1, Col: c.Col}
		if down.Row < rows && !walls.Has(down) {
			edges++
		}
	}
	return edges
}

func TestGenerateRejectsNonPositive(t *testing.T) {
	_, err := Generate(Config{Rows: 0, Cols: 5})
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = Generate(Config{Rows: 5, Cols: -3})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestGenerateDegenerateSizes(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 7}, {2, 2}, {2, 9}, {7, 1}} {
		walls, err := Generate(Config{Rows: size[0], Cols: size[1], Seed: 7})
		require.NoError(t, err)
		for c := range walls {
			assert.True(t, c.Row < size[0] && c.Col < size[1], "wall %s outside %v", c, size)
		}
	}
}

func TestGenerateSmallestMaze(t *testing.T) {
	walls, err := Generate(Config{Rows: 3, Cols: 3, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 8, walls.Len())
	assert.False(t, walls.Has(Root))
}

func TestGenerateIsSeedDeterministic(t *testing.T) {
	a, err := Generate(Config{Rows: 27, Cols: 85, Seed: 42})
	require.NoError(t, err)
	b, err := Generate(Config{Rows: 27, Cols: 85, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())
}

func TestGenerateKeepsBorderOnOddGrid(t *testing.T) {
	const rows, cols = 27, 85
	walls, err := Generate(Config{Rows: rows, Cols: cols, Seed: 3})
	require.NoError(t, err)
	for c := 0; c < cols; c++ {
		assert.True(t, walls.Has(grid.Cell{Row: 0, Col: c}))
		assert.True(t, walls.Has(grid.Cell{Row: rows - 1, Col: c}))
	}
	for r := 0; r < rows; r++ {
		assert.True(t, walls.Has(grid.Cell{Row: r, Col: 0}))
		assert.True(t, walls.Has(grid.Cell{Row: r, Col: cols - 1}))
	}
	assert.False(t, walls.Has(grid.Cell{Row: rows - 2, Col: cols - 2}))
}

func TestGenerateEvenGridOpensFarBorder(t *testing.T) {
	for _, size := range [][2]int{{4, 4}, {6, 8}} {
		rows, cols := size[0], size[1]
		for seed := int64(1); seed <= 20; seed++ {
			walls, err := Generate(Config{Rows: rows, Cols: cols, Seed: seed})
			require.NoError(t, err)

			// Rooms on the last odd row/col are carved too
			initial := rows*cols - RoomCount(rows, cols)
			assert.Equal(t, RoomCount(rows, cols)-1, initial-walls.Len(), "%dx%d seed %d", rows, cols, seed)
			assert.False(t, walls.Has(grid.Cell{Row: rows - 1, Col: cols - 1}))

			// Top and left borders stay walled
			for c := 0; c < cols; c++ {
				assert.True(t, walls.Has(grid.Cell{Row: 0, Col: c}))
			}
			for r := 0; r < rows; r++ {
				assert.True(t, walls.Has(grid.Cell{Row: r, Col: 0}))
			}

			v := len(openCells(walls, rows, cols))
			assert.Equal(t, v, len(reachable(walls, rows, cols)))
			assert.Equal(t, v-1, openEdges(walls, rows, cols))
		}
	}
	assert.Equal(t, 4, RoomCount(4, 4))
	assert.Equal(t, 12, RoomCount(6, 8))
}

func TestPerfectMazeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	// Odd sizes are the lattice's natural shape: walls on every border
	oddSize := gen.IntRange(1, 20).Map(func(n int) int { return 2*n + 1 })

	properties.Property("carves exactly rooms-1 walls", prop.ForAll(
		func(rows, cols int, seed int64) bool {
			walls, err := Generate(Config{Rows: rows, Cols: cols, Seed: seed})
			if err != nil {
				return false
			}
			initial := rows*cols - RoomCount(rows, cols)
			return initial-walls.Len() == RoomCount(rows, cols)-1
		},
		oddSize, oddSize, gen.Int64Range(1, 1<<40),
	))

	properties.Property("every room reachable from root", prop.ForAll(
		func(rows, cols int, seed int64) bool {
			walls, _ := Generate(Config{Rows: rows, Cols: cols, Seed: seed})
			seen := reachable(walls, rows, cols)
			for r := 1; r < rows; r += 2 {
				for c := 1; c < cols; c += 2 {
					if !seen[grid.Cell{Row: r, Col: c}] {
						return false
					}
				}
			}
			return len(seen) == len(openCells(walls, rows, cols))
		},
		oddSize, oddSize, gen.Int64Range(1, 1<<40),
	))

	properties.Property("open cells form a tree", prop.ForAll(
		func(rows, cols int, seed int64) bool {
			walls, _ := Generate(Config{Rows: rows, Cols: cols, Seed: seed})
			v := len(openCells(walls, rows, cols))
			return openEdges(walls, rows, cols) == v-1
		},
		oddSize, oddSize, gen.Int64Range(1, 1<<40),
	))

	properties.TestingRun(t)
}

func TestBetween(t *testing.T) {
	assert.Equal(t, grid.Cell{Row: 1, Col: 2}, Between(grid.Cell{Row: 1, Col: 1}, grid.Cell{Row: 1, Col: 3}))
	assert.Equal(t, grid.Cell{Row: 4, Col: 5}, Between(grid.Cell{Row: 5, Col: 5}, grid.Cell{Row: 3, Col: 5}))
}
