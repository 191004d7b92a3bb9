package navigation

import "errors"

// ErrEmptyFrontier signals ExtractMin on an empty frontier, a search loop bug
var ErrEmptyFrontier = errors.New("extract from empty frontier")

// Frontier is a binary min-heap over opaque keys
// Priorities are not stored: every comparison re-reads them through the lookup,
// so lowering a key's priority and re-inserting it acts as decrease-key. The
// stale duplicate left behind is skipped by the caller's finalized check.
// Ties come out in no particular order.
type Frontier[K any] struct {
	keys     []K
	priority func(K) int
}

// NewFrontier creates a frontier ordered by the given priority lookup
func NewFrontier[K any](priority func(K) int) *Frontier[K] {
	return &Frontier[K]{priority: priority}
}

// Len returns the number of entries, duplicates included
func (f *Frontier[K]) Len() int {
	return len(f.keys)
}

// Insert adds a key and sifts it up
func (f *Frontier[K]) Insert(key K) {
	f.keys = append(f.keys, key)
	i := len(f.keys) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if f.priority(f.keys[parent]) <= f.priority(f.keys[i]) {
			break
		}
		f.keys[parent], f.keys[i] = f.keys[i], f.keys[parent]
		i = parent
	}
}

// ExtractMin removes and returns the key with the smallest current priority
func (f *Frontier[K]) ExtractMin() (K, error) {
	var zero K
	n := len(f.keys)
	if n == 0 {
		return zero, ErrEmptyFrontier
	}

	key := f.keys[0]
	f.keys[0] = f.keys[n-1]
	f.keys[n-1] = zero
	f.keys = f.keys[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(f.keys) {
			break
		}
		smallest := left
		if right := left + 1; right < len(f.keys) && f.priority(f.keys[right]) < f.priority(f.keys[left]) {
			smallest = right
		}
		if f.priority(f.keys[i]) <= f.priority(f.keys[smallest]) {
			break
		}
		f.keys[i], f.keys[smallest] = f.keys[smallest], f.keys[i]
		i = smallest
	}
	return key, nil
}

// mustExtract pops from a frontier the caller has already checked to be non-empty
func mustExtract[K any](f *Frontier[K]) K {
	key, err := f.ExtractMin()
	if err != nil {
		panic(err)
	}
	return key
}
