package main

import (
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/maze"
	"github.com/lixenwraith/pathviz/navigation"
)

var (
	rowsFlag = flag.Int("rows", 27, "Board rows")
	colsFlag = flag.Int("cols", 85, "Board cols")
	seedFlag = flag.Int64("seed", 12345, "Maze seed")
)

type board struct {
	name string
	grid *grid.Grid
}

func main() {
	flag.Parse()

	boards, err := buildBoards(*rowsFlag, *colsFlag, *seedFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build boards: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Benchmark: %dx%d boards, maze seed %d\n\n", *rowsFlag, *colsFlag, *seedFlag)
	fmt.Printf("%-28s %12s %10s %8s\n", "Name", "ns/op", "visited", "route")
	fmt.Println("-------------------------------------------------------------")

	for _, b := range boards {
		for _, algo := range []navigation.Algorithm{navigation.Dijkstra, navigation.AStar} {
			res, err := navigation.Search(algo, b.grid)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s/%s: %v\n", b.name, algo, err)
				os.Exit(1)
			}

			g := b.grid
			result := testing.Benchmark(func(tb *testing.B) {
				for tb.Loop() {
					_, _ = navigation.Search(algo, g)
				}
			})
			nsPerOp := float64(result.T.Nanoseconds()) / float64(result.N)
			fmt.Printf("%-28s %10.0f ns %10d %8d\n",
				b.name+"/"+algo.String(), nsPerOp, len(res.Visited), len(res.Route()))
		}
	}

	result := testing.Benchmark(func(tb *testing.B) {
		for tb.Loop() {
			_, _ = maze.Generate(maze.Config{Rows: *rowsFlag, Cols: *colsFlag, Seed: *seedFlag})
		}
	})
	fmt.Printf("\n%-28s %10.0f ns\n", "maze.Generate", float64(result.T.Nanoseconds())/float64(result.N))
}

// buildBoards returns an open board with middle-row endpoints and a maze with corner endpoints
func buildBoards(rows, cols int, seed int64) ([]board, error) {
	mid := (rows + 1) / 2
	if mid >= rows {
		mid = rows - 1
	}
	open, err := grid.New(rows, cols, grid.Cell{Row: mid, Col: 0}, grid.Cell{Row: mid, Col: cols - 1})
	if err != nil {
		return nil, err
	}

	walls, err := maze.Generate(maze.Config{Rows: rows, Cols: cols, Seed: seed})
	if err != nil {
		return nil, err
	}
	mz, err := grid.New(rows, cols, maze.Root, grid.Cell{Row: max(rows-2, 0), Col: max(cols-2, 0)})
	if err != nil {
		return nil, err
	}
	mz.Walls = walls
	mz.Walls.Remove(mz.Start)
	mz.Walls.Remove(mz.Target)

	return []board{{"open", open}, {"maze", mz}}, nil
}
