package cast

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *TranslationUnit:
		out = append(out, n.Decls...)
	case *FuncDecl:
		for _, p := range n.Params {
			add(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *Block:
		out = append(out, n.List...)
	case *VarDecl:
		if n.Init != nil {
			add(n.Init)
		}
	case *CallExpr:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *BinaryExpr:
		add(n.X)
		add(n.Y)
	case *UnaryExpr:
		add(n.X)
	case *IndexExpr:
		add(n.X)
		add(n.Index)
	case *ReturnStmt:
		if n.Result != nil {
			add(n.Result)
		}
	case *ParenExpr:
		add(n.X)
	case *Ident:
	case *OtherNode:
		out = append(out, n.Children...)
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first preorder, calling f
// for every node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
