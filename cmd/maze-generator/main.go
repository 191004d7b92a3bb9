package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/pathviz/grid"
	"github.com/lixenwraith/pathviz/maze"
	"github.com/lixenwraith/pathviz/navigation"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== ITERATIVE BACKTRACKER MAZE GENERATOR ===")

		rows := getInt(reader, "Rows [Odd prefered] (default 27): ", 27)
		cols := getInt(reader, "Cols [Odd prefered] (default 85): ", 85)
		seed := int64(getInt(reader, "Seed [0 = random] (default 0): ", 0))
		algo := getAlgorithm(reader, "Solver [dijkstra/astar] (default astar): ", navigation.AStar)

		fmt.Println("\nGenerating...")
		startT := time.Now()
		g, err := build(rows, cols, seed)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		dur := time.Since(startT)

		res, err := navigation.Search(algo, g)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("Done in %v\n", dur)
		fmt.Printf("Grid Dimensions: %dx%d, walls %d\n", g.Cols, g.Rows, g.Walls.Len())
		fmt.Printf("%s visited %d cells\n", algo.Label(), len(res.Visited))

		route := res.Route()
		if route != nil {
			fmt.Printf("Solution Path Length: %d steps\n", len(route)-1)
		} else {
			fmt.Println("Status: Unsolvable (Isolated Start/End)")
		}

		draw(os.Stdout, g, route)

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// build generates a maze with endpoints in the top-left and bottom-right rooms
func build(rows, cols int, seed int64) (*grid.Grid, error) {
	walls, err := maze.Generate(maze.Config{Rows: rows, Cols: cols, Seed: seed})
	if err != nil {
		return nil, err
	}
	target := grid.Cell{Row: max(rows-2, 0), Col: max(cols-2, 0)}
	g, err := grid.New(rows, cols, maze.Root, target)
	if err != nil {
		return nil, err
	}
	g.Walls = walls
	g.Walls.Remove(g.Start)
	g.Walls.Remove(g.Target)
	return g, nil
}

func draw(w io.Writer, g *grid.Grid, route []grid.Cell) {
	onRoute := make(map[grid.Cell]bool, len(route))
	for _, c := range route {
		onRoute[c] = true
	}

	var sb strings.Builder
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := grid.Cell{Row: row, Col: col}
			switch {
			case c == g.Start:
				sb.WriteRune('S')
			case c == g.Target:
				sb.WriteRune('E')
			case g.IsWall(c):
				sb.WriteRune('█')
			case onRoute[c]:
				sb.WriteRune('•')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getAlgorithm(r *bufio.Reader, prompt string, def navigation.Algorithm) navigation.Algorithm {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	if strings.TrimSpace(s) == "" {
		return def
	}
	a, err := navigation.ParseAlgorithm(s)
	if err != nil {
		return def
	}
	return a
}
