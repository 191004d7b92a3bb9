package grid

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Grid describes a rectangular cell grid, its walls and its two endpoints
// Dimensions are fixed for a session; walls and endpoints are mutated by editors between searches
type Grid struct {
	Rows   int `validate:"min=1"`
	Cols   int `validate:"min=1"`
	Walls  WallSet
	Start  Cell
	Target Cell
}

// New creates a wall-free grid and validates it
func New(rows, cols int, start, target Cell) (*Grid, error) {
	g := &Grid{
		Rows:   rows,
		Cols:   cols,
		Walls:  make(WallSet),
		Start:  start,
		Target: target,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate rejects non-positive dimensions and out-of-range endpoints
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidDimensions)
	}
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("%w: %dx%d: %v", ErrInvalidDimensions, g.Rows, g.Cols, err)
	}
	if !g.InBounds(g.Start) {
		return fmt.Errorf("%w: start %s outside %dx%d", ErrOutOfBounds, g.Start, g.Rows, g.Cols)
	}
	if !g.InBounds(g.Target) {
		return fmt.Errorf("%w: target %s outside %dx%d", ErrOutOfBounds, g.Target, g.Rows, g.Cols)
	}
	return nil
}

// InBounds reports whether c lies on the grid
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// IsWall reports whether c is blocked
func (g *Grid) IsWall(c Cell) bool {
	return g.Walls.Has(c)
}

// Size returns the cell count
func (g *Grid) Size() int {
	return g.Rows * g.Cols
}

// Neighbors appends the in-bounds cardinal neighbors of c to dst (up, down, left, right)
func (g *Grid) Neighbors(dst []Cell, c Cell) []Cell {
	for _, d := range Cardinal {
		n := Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.InBounds(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// Clone returns a copy whose wall set is independent of the receiver
func (g *Grid) Clone() *Grid {
	c := *g
	c.Walls = g.Walls.Clone()
	return &c
}

// Fingerprint describes endpoints and walls; equal fingerprints mean identical search input
func (g *Grid) Fingerprint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d|%s|%s|", g.Rows, g.Cols, g.Start.Key(), g.Target.Key())
	for _, c := range g.Walls.Cells() {
		sb.WriteString(c.Key())
		sb.WriteByte(',')
	}
	return sb.String()
}
