package checker

import (
	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/memstate"
	"github.com/securego/memcheck/rules"
)

// checkAssign validates a plain assignment. Writes through a pointer are
// handed to checkWrite.
func (c *Checker) checkAssign(n *cast.BinaryExpr) Outcome {
	switch lhs := cast.Unparen(n.X).(type) {
	case *cast.UnaryExpr:
		if lhs.Op != "*" {
			return Continue
		}
		return c.checkWrite(lhs.Position, lhs.X, "dereference of")
	case *cast.IndexExpr:
		return c.checkWrite(lhs.Position, lhs.X, "index into")
	}

	dst, ok := c.resolve(n.X)
	if !ok {
		return Continue
	}

	// V = realloc(V, n) is diagnosed by the call itself.
	if call, isCall := cast.Unparen(n.Y).(*cast.CallExpr); isCall && call.Callee == fnRealloc {
		if src, ok := c.firstArg(call); ok && src == dst {
			return Continue
		}
	}

	if src, ok := c.resolve(n.Y); ok && c.declaredType(src) == c.declaredType(dst) {
		if c.store.State(src) == memstate.Owned {
			c.report(n.Position, rules.AliasOwned, src,
				"aliasing a pointer that still owns heap memory; transfer ownership explicitly")
			return SkipSubtree
		}
	}

	st, tracked := c.store.Lookup(dst)
	if !tracked {
		return Continue
	}
	switch st {
	case memstate.Owned:
		c.report(n.Position, rules.OverwriteOwned, dst, "overwriting a variable without freeing its memory first")
		return SkipSubtree
	case memstate.Unknown:
		c.report(n.Position, rules.OverwriteUnknown, dst, "current state of memory is unknown before overwrite")
		return SkipSubtree
	}
	return Continue
}

// checkWrite validates *p = v and p[i] = v. Unlike other uses, writing
// through a pointer the store knows nothing about is rejected.
func (c *Checker) checkWrite(pos cast.Pos, base cast.Expr, what string) Outcome {
	id, ok := c.resolve(base)
	if !ok {
		return Continue
	}
	st, tracked := c.store.Lookup(id)
	if !tracked {
		c.report(pos, rules.DerefUntracked, id, what+" a pointer with no tracked allocation")
		return SkipSubtree
	}
	switch st {
	case memstate.Free:
		c.report(pos, rules.DerefFreed, id, what+" freed memory")
		return SkipSubtree
	case memstate.Unknown:
		c.report(pos, rules.DerefUnknown, id, "current state of memory is unknown at "+what+" pointer")
		return SkipSubtree
	}
	return Continue
}

// checkReturn validates the returned variable. Only the unknown case stops
// descent into the statement.
func (c *Checker) checkReturn(n *cast.ReturnStmt) Outcome {
	id, ok := c.resolve(n.Result)
	if !ok {
		return Continue
	}
	st, tracked := c.store.Lookup(id)
	if !tracked {
		return Continue
	}
	switch st {
	case memstate.Owned:
		c.report(n.Position, rules.ReturnOwned, id, "returning a pointer that still owns heap memory")
	case memstate.Free:
		c.report(n.Position, rules.ReturnFreed, id, "returning a dangling pointer to already-freed memory")
	case memstate.Unknown:
		c.report(n.Position, rules.ReturnUnknown, id, "current state of memory is unknown at return")
		return SkipSubtree
	}
	return Continue
}
