package frontend

import "github.com/securego/memcheck/cast"

// scope maps names to the variables they denote. Functions are recorded with
// NoVarID so that they shadow variables of enclosing scopes.
type scope struct {
	parent *scope
	names  map[string]cast.VarID
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]cast.VarID)}
}

func (s *scope) lookup(name string) (cast.VarID, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if id, ok := cur.names[name]; ok {
			return id, true
		}
	}
	return cast.NoVarID, false
}

// define binds name in s. C allows redeclaration, the latest one wins.
func (s *scope) define(name string, id cast.VarID) {
	s.names[name] = id
}
