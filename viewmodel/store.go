package viewmodel

import (
	"slices"
	"sync"

	"github.com/kasuganosora/datapad/model"
)

// Store owns one shop listing and its table state. It is safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []model.InventoryItem
	state State
}

// NewStore returns a Store in the default state with no items.
func NewStore() *Store {
	return &Store{state: Default()}
}

// Load replaces the listing with a copy of items and resets the state.
func (st *Store) Load(items []model.InventoryItem) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.items = slices.Clone(items)
	st.state = Reduce(st.state, Reload{})
}

// Dispatch applies a and returns the resulting state.
func (st *Store) Dispatch(a Action) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = Reduce(st.state, a)
	return st.state.clone()
}

// State returns a copy of the current state.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.clone()
}

// View derives the visible page from the current listing and state.
func (st *Store) View() View {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return Derive(st.items, st.state)
}

// Items returns a copy of the loaded listing.
func (st *Store) Items() []model.InventoryItem {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return slices.Clone(st.items)
}
