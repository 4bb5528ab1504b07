package render

import (
	"sort"
	"sync"
)

// LayerSet tracks which trips are hidden on a map. The zero value shows
// everything. Safe for concurrent use.
type LayerSet struct {
	mu     sync.RWMutex
	hidden map[int64]struct{}
}

// NewLayerSet returns a LayerSet with the given trips hidden.
func NewLayerSet(hidden ...int64) *LayerSet {
	ls := &LayerSet{}
	for _, id := range hidden {
		ls.Hide(id)
	}
	return ls
}

// Hide hides a trip's layer.
func (ls *LayerSet) Hide(tripID int64) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.hidden == nil {
		ls.hidden = make(map[int64]struct{})
	}
	ls.hidden[tripID] = struct{}{}
}

// Show makes a trip visible again.
func (ls *LayerSet) Show(tripID int64) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.hidden, tripID)
}

// Toggle flips a trip's visibility and returns the new state.
func (ls *LayerSet) Toggle(tripID int64) bool {
	if ls.Visible(tripID) {
		ls.Hide(tripID)
		return false
	}
	ls.Show(tripID)
	return true
}

// Visible reports whether a trip is shown.
func (ls *LayerSet) Visible(tripID int64) bool {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	_, hidden := ls.hidden[tripID]
	return !hidden
}

// Hidden returns the hidden trip IDs in ascending order.
func (ls *LayerSet) Hidden() []int64 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	ids := make([]int64, 0, len(ls.hidden))
	for id := range ls.hidden {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
