package checker

import "github.com/securego/memcheck/cast"

// resolve returns the variable e denotes, ignoring parentheses. Anything
// other than a direct reference to one declared variable is untracked.
func (c *Checker) resolve(e cast.Expr) (cast.VarID, bool) {
	if e == nil {
		return cast.NoVarID, false
	}
	id, ok := cast.Unparen(e).(*cast.Ident)
	if !ok || !id.Ref.IsValid() {
		return cast.NoVarID, false
	}
	return id.Ref, true
}

// declaredType returns the declared type of a variable, or "".
func (c *Checker) declaredType(id cast.VarID) string {
	if v := c.unit.Var(id); v != nil {
		return v.Type
	}
	return ""
}
