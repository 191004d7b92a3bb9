package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is one addressable grid position
type Cell struct {
	Row, Col int
}

// Key returns the canonical "row_col" identifier used by renderers
func (c Cell) Key() string {
	return strconv.Itoa(c.Row) + "_" + strconv.Itoa(c.Col)
}

// Index packs the cell into a flat row-major index for a grid with the given column count
func (c Cell) Index(cols int) int {
	return c.Row*cols + c.Col
}

// String implements fmt.Stringer
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// CellAt unpacks a flat row-major index
func CellAt(idx, cols int) Cell {
	return Cell{Row: idx / cols, Col: idx % cols}
}

// ParseKey reverses Cell.Key
func ParseKey(key string) (Cell, error) {
	rowStr, colStr, ok := strings.Cut(key, "_")
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Cell{}, fmt.Errorf("%w: %q: %v", ErrInvalidKey, key, err)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Cell{}, fmt.Errorf("%w: %q: %v", ErrInvalidKey, key, err)
	}
	return Cell{Row: row, Col: col}, nil
}

// Manhattan returns |dRow| + |dCol|
func Manhattan(a, b Cell) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Cardinal offsets in neighbor enumeration order: up, down, left, right
var Cardinal = [4]Cell{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}
