package grid

import "sort"

// WallSet is a sparse set of impassable cells
type WallSet map[Cell]struct{}

// NewWallSet creates a set holding the given cells
func NewWallSet(cells ...Cell) WallSet {
	w := make(WallSet, len(cells))
	for _, c := range cells {
		w[c] = struct{}{}
	}
	return w
}

// Has reports membership, nil sets are empty
func (w WallSet) Has(c Cell) bool {
	_, ok := w[c]
	return ok
}

func (w WallSet) Add(c Cell) {
	w[c] = struct{}{}
}

func (w WallSet) Remove(c Cell) {
	delete(w, c)
}

func (w WallSet) Len() int {
	return len(w)
}

// Clone returns an independent copy
func (w WallSet) Clone() WallSet {
	c := make(WallSet, len(w))
	for k := range w {
		c[k] = struct{}{}
	}
	return c
}

// Cells returns members in row-major order
func (w WallSet) Cells() []Cell {
	cells := make([]Cell, 0, len(w))
	for c := range w {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}
