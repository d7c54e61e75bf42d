package selection

import "sync"

// None is the selected index when nothing is selected.
const None = -1

// State is the externally owned selection state.
type State struct {
	// SelectedIndex is the raw row index of the selected row, or None.
	SelectedIndex int
	// ShowInspector reports whether the side inspector panel is enabled.
	ShowInspector bool
	// Renaming is set while an in-place rename is active for the selected row.
	Renaming bool
}

// HasSelection reports whether a row is selected.
func (s State) HasSelection() bool {
	return s.SelectedIndex != None
}

// Store is the mutable selection cell shared with the rest of the UI.
type Store interface {
	State() State
	SetSelectedIndex(i int)
	SetShowInspector(show bool)
	SetRenaming(renaming bool)
}

// MemoryStore is an in-memory Store safe for use from multiple goroutines.
type MemoryStore struct {
	mu        sync.RWMutex
	state     State
	observers map[int]func(State)
	nextObs   int
}

// NewMemoryStore creates a store with nothing selected.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state:     State{SelectedIndex: None},
		observers: make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (s *MemoryStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetSelectedIndex stores the selected row index. Negative values clear the selection.
func (s *MemoryStore) SetSelectedIndex(i int) {
	if i < 0 {
		i = None
	}
	s.update(func(st *State) { st.SelectedIndex = i })
}

// SetShowInspector toggles the inspector panel flag.
func (s *MemoryStore) SetShowInspector(show bool) {
	s.update(func(st *State) { st.ShowInspector = show })
}

// SetRenaming sets the in-place rename flag.
func (s *MemoryStore) SetRenaming(renaming bool) {
	s.update(func(st *State) { st.Renaming = renaming })
}

// Subscribe registers fn to receive the new state after each change.
// The returned function removes it.
func (s *MemoryStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// update applies fn and notifies observers outside the lock when the state changed.
func (s *MemoryStore) update(fn func(*State)) {
	s.mu.Lock()
	before := s.state
	fn(&s.state)
	after := s.state
	observers := make([]func(State), 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	if before == after {
		return
	}
	for _, o := range observers {
		o(after)
	}
}
