package navigation

import "github.com/lixenwraith/pathviz/grid"

// ResultCache holds the last search result and recomputes only when its input changed
type ResultCache struct {
	Result *Result

	LastFingerprint string
	LastAlgorithm   Algorithm

	// PendingUpdate latches true on MarkDirty, cleared after compute
	PendingUpdate bool
}

// NewResultCache creates an empty cache that computes on first Update
func NewResultCache() *ResultCache {
	return &ResultCache{PendingUpdate: true}
}

// Update returns the cached result for (kind, g), searching again if endpoints,
// walls or algorithm changed since the last computation
// Returns true if a search ran
func (c *ResultCache) Update(kind Algorithm, g *grid.Grid) (*Result, bool, error) {
	fp := g.Fingerprint()
	if !c.PendingUpdate && c.Result != nil && fp == c.LastFingerprint && kind == c.LastAlgorithm {
		return c.Result, false, nil
	}

	res, err := Search(kind, g)
	if err != nil {
		return nil, false, err
	}

	c.Result = res
	c.LastFingerprint = fp
	c.LastAlgorithm = kind
	c.PendingUpdate = false
	return res, true, nil
}

// MarkDirty forces recomputation on next Update
func (c *ResultCache) MarkDirty() {
	c.PendingUpdate = true
}

// Reset drops the cached result
func (c *ResultCache) Reset() {
	c.Result = nil
	c.LastFingerprint = ""
	c.PendingUpdate = true
}

// IsValid returns true if a result is cached
func (c *ResultCache) IsValid() bool {
	return c.Result != nil && !c.PendingUpdate
}
