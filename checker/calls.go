package checker

import (
	"errors"

	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/memstate"
	"github.com/securego/memcheck/rules"
)

const (
	fnMalloc  = "malloc"
	fnCalloc  = "calloc"
	fnRealloc = "realloc"
	fnFree    = "free"
)

func isAllocator(name string) bool {
	switch name {
	case fnMalloc, fnCalloc, fnRealloc, fnFree:
		return true
	}
	return false
}

func (c *Checker) checkCall(call *cast.CallExpr, tgt *target) Outcome {
	switch call.Callee {
	case fnMalloc, fnCalloc:
		return c.checkAlloc(call, tgt)
	case fnRealloc:
		return c.checkRealloc(call, tgt)
	case fnFree:
		return c.checkFree(call)
	}
	return Continue
}

func (c *Checker) checkAlloc(call *cast.CallExpr, tgt *target) Outcome {
	id, ok := tgt.take()
	if !ok {
		c.report(call.Position, rules.AllocUnassigned, cast.NoVarID, "allocated memory is not assigned to a variable")
		return SkipSubtree
	}
	c.store.Allocate(id)
	return Continue
}

func (c *Checker) checkRealloc(call *cast.CallExpr, tgt *target) Outcome {
	id, ok := tgt.take()
	if !ok {
		c.report(call.Position, rules.ReallocUnassigned, cast.NoVarID, "reallocated memory is not assigned to a variable")
		return SkipSubtree
	}

	source, ok := c.firstArg(call)
	if !ok {
		c.report(call.Position, rules.ReallocNotVariable, cast.NoVarID, "realloc was not called with a variable")
		return SkipSubtree
	}

	err := c.store.Reallocate(id, source, c.opts.ReallocInvalidatesSource)
	switch {
	case errors.Is(err, memstate.ErrReallocSameVariable):
		c.report(call.Position, rules.ReallocSameVariable, id, err.Error())
		return SkipSubtree
	case errors.Is(err, memstate.ErrReallocIntoOwned):
		c.report(call.Position, rules.ReallocIntoOwned, id, err.Error())
		return SkipSubtree
	}
	return Continue
}

func (c *Checker) checkFree(call *cast.CallExpr) Outcome {
	id, ok := c.firstArg(call)
	if !ok {
		c.report(call.Position, rules.FreeNotVariable, cast.NoVarID, "free was not called with a variable")
		return SkipSubtree
	}

	err := c.store.Release(id)
	switch {
	case errors.Is(err, memstate.ErrDoubleFree):
		c.report(call.Position, rules.DoubleFree, id, err.Error())
		return SkipSubtree
	case errors.Is(err, memstate.ErrFreeUnknown):
		c.report(call.Position, rules.FreeUnknown, id, err.Error())
		return SkipSubtree
	}
	return Continue
}

// firstArg resolves the pointer argument of realloc and free.
func (c *Checker) firstArg(call *cast.CallExpr) (cast.VarID, bool) {
	if len(call.Args) == 0 {
		return cast.NoVarID, false
	}
	return c.resolve(call.Args[0])
}
