// Package memstate holds the per-variable heap lifecycle state and the
// transition rules applied by allocation, reallocation and release events.
package memstate

import (
	"errors"
	"sort"

	"github.com/securego/memcheck/cast"
)

// State is the lifecycle state of the heap memory bound to a variable.
type State uint8

const (
	// Unknown means there is no usable allocation history. It is also the
	// state of every variable absent from the store.
	Unknown State = iota
	// Free means the variable's memory has been released.
	Free
	// Owned means the variable is responsible for releasing live memory.
	Owned
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Free:
		return "free"
	case Owned:
		return "owned"
	}
	return "invalid"
}

// Rejected transitions.
var (
	ErrReallocSameVariable = errors.New("cannot reallocate to same variable")
	ErrReallocIntoOwned    = errors.New("cannot reallocate into a variable already owning heap memory")
	ErrDoubleFree          = errors.New("double free of memory")
	ErrFreeUnknown         = errors.New("free of pointer in unknown state")
)

// Entry is one variable and its state.
type Entry struct {
	ID    cast.VarID
	State State
}

// Store maps variables to their state. A Store is owned by a single
// traversal and is not safe for concurrent use.
type Store struct {
	states map[cast.VarID]State
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{states: make(map[cast.VarID]State)}
}

// Lookup returns the state of id and whether id is tracked at all.
func (s *Store) Lookup(id cast.VarID) (State, bool) {
	st, ok := s.states[id]
	return st, ok
}

// State returns the state of id, Unknown if it is not tracked.
func (s *Store) State(id cast.VarID) State {
	return s.states[id]
}

// Set records st for id unconditionally.
func (s *Store) Set(id cast.VarID, st State) {
	s.states[id] = st
}

// Len returns the number of tracked variables.
func (s *Store) Len() int {
	return len(s.states)
}

// Reset forgets every variable.
func (s *Store) Reset() {
	s.states = make(map[cast.VarID]State)
}

// Entries returns the tracked variables in ascending ID order, which is
// declaration order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.states))
	for id, st := range s.states {
		entries = append(entries, Entry{ID: id, State: st})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// Unresolved returns, in declaration order, the variables that still own
// memory or whose state is unknown.
func (s *Store) Unresolved() []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.State == Owned || e.State == Unknown {
			out = append(out, e)
		}
	}
	return out
}
