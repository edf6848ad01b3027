package memstate

import "github.com/securego/memcheck/cast"

// Allocate binds fresh memory from malloc or calloc to target. Any previous
// state is replaced.
func (s *Store) Allocate(target cast.VarID) {
	s.states[target] = Owned
}

// Reallocate binds the result of realloc(source, ...) to target.
//
// The target may be free or untracked; a target that still owns memory is
// rejected. The source keeps its state unless invalidate is set, in which
// case it becomes Unknown: its memory may have moved.
func (s *Store) Reallocate(target, source cast.VarID, invalidate bool) error {
	if target == source {
		return ErrReallocSameVariable
	}
	if st, ok := s.states[target]; ok && st == Owned {
		return ErrReallocIntoOwned
	}
	s.states[target] = Owned
	if invalidate && source.IsValid() {
		s.states[source] = Unknown
	}
	return nil
}

// Release applies free(id).
func (s *Store) Release(id cast.VarID) error {
	switch s.states[id] {
	case Free:
		return ErrDoubleFree
	case Owned:
		s.states[id] = Free
		return nil
	default:
		return ErrFreeUnknown
	}
}
