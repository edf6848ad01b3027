package checker

import "github.com/securego/memcheck/cast"

// Outcome tells the walker whether to descend into the visited node.
// It is independent of whether a diagnostic was reported.
type Outcome int

const (
	Continue Outcome = iota
	SkipSubtree
)

// target is the variable an allocation found in the current subtree is bound
// to: the variable being initialized or assigned. The first allocation call
// consumes it.
type target struct {
	id   cast.VarID
	used bool
}

func (t *target) take() (cast.VarID, bool) {
	if t == nil || t.used {
		return cast.NoVarID, false
	}
	t.used = true
	return t.id, true
}

// walk visits n and, unless told otherwise, its children in source order.
// tgt is the allocation target in scope for n, possibly nil.
func (c *Checker) walk(n cast.Node, tgt *target) {
	if n == nil || c.visit(n, tgt) == SkipSubtree {
		return
	}

	switch n := n.(type) {
	case *cast.VarDecl:
		if n.Init != nil {
			c.walk(n.Init, &target{id: n.ID})
		}
	case *cast.BinaryExpr:
		c.walk(n.X, nil)
		if n.Op == "=" {
			tgt = nil
			if id, ok := c.resolve(n.X); ok {
				tgt = &target{id: id}
			}
		}
		c.walk(n.Y, tgt)
	case *cast.CallExpr:
		if n.Callee == "" {
			c.walk(n.Fun, tgt)
		}
		if isAllocator(n.Callee) {
			tgt = nil
		}
		for _, a := range n.Args {
			c.walk(a, tgt)
		}
	case *cast.FuncDecl, *cast.Block, *cast.TranslationUnit:
		for _, child := range cast.Children(n) {
			c.walk(child, nil)
		}
	default:
		for _, child := range cast.Children(n) {
			c.walk(child, tgt)
		}
	}
}

// visit applies the rule for n's kind.
func (c *Checker) visit(n cast.Node, tgt *target) Outcome {
	switch n := n.(type) {
	case *cast.CallExpr:
		return c.checkCall(n, tgt)
	case *cast.BinaryExpr:
		if n.Op != "=" {
			return Continue
		}
		return c.checkAssign(n)
	case *cast.ReturnStmt:
		return c.checkReturn(n)
	case *cast.Ident:
		if !n.Ref.IsValid() && isAllocator(n.Name) {
			c.note(n.Position, "%s referenced indirectly; calls through it are not tracked", n.Name)
		}
	}
	return Continue
}
