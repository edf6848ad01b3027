package frontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/securego/memcheck/cast"
)

// lowerer converts one tree-sitter tree into a cast.TranslationUnit,
// numbering variable declarations in the order they are met.
type lowerer struct {
	file  string
	src   []byte
	scope *scope
	vars  []*cast.VarDecl
}

func newLowerer(file string, src []byte) *lowerer {
	return &lowerer{file: file, src: src, scope: newScope(nil)}
}

func (l *lowerer) unit(root *sitter.Node) *cast.TranslationUnit {
	u := &cast.TranslationUnit{File: l.file}
	u.Decls = l.children(root)
	u.Vars = l.vars
	return u
}

func (l *lowerer) push() { l.scope = newScope(l.scope) }
func (l *lowerer) pop()  { l.scope = l.scope.parent }

func (l *lowerer) pos(n *sitter.Node) cast.Pos {
	pt := n.StartPoint()
	return cast.Pos{File: l.file, Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}

func (l *lowerer) text(n *sitter.Node) string {
	return n.Content(l.src)
}

func (l *lowerer) children(n *sitter.Node) []cast.Node {
	var out []cast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, l.stmt(n.NamedChild(i))...)
	}
	return out
}

// stmt lowers a node found in statement position. Declarations may
// produce several nodes, preprocessor lines and comments none.
func (l *lowerer) stmt(n *sitter.Node) []cast.Node {
	switch n.Type() {
	case "comment", "type_definition", "preproc_include", "preproc_def",
		"preproc_function_def", "preproc_call":
		return nil
	case "function_definition":
		return []cast.Node{l.function(n)}
	case "declaration":
		return l.declaration(n)
	case "compound_statement":
		return []cast.Node{l.block(n)}
	case "for_statement":
		l.push()
		defer l.pop()
		return []cast.Node{l.other(n)}
	case "return_statement":
		ret := &cast.ReturnStmt{Position: l.pos(n)}
		if e := firstNamed(n); e != nil {
			ret.Result = l.expr(e)
		}
		return []cast.Node{ret}
	case "expression_statement":
		if e := firstNamed(n); e != nil {
			return []cast.Node{l.expr(e)}
		}
		return nil
	}
	return []cast.Node{l.expr(n)}
}

func (l *lowerer) block(n *sitter.Node) *cast.Block {
	l.push()
	defer l.pop()
	return &cast.Block{Position: l.pos(n), List: l.children(n)}
}

func (l *lowerer) function(n *sitter.Node) *cast.FuncDecl {
	fn := &cast.FuncDecl{Position: l.pos(n)}
	decl := functionDeclarator(n.ChildByFieldName("declarator"))
	if decl != nil {
		if ident, _, _ := unwrapDeclarator(decl); ident != nil {
			fn.Name = l.text(ident)
			l.scope.define(fn.Name, cast.NoVarID)
		}
	}

	l.push()
	defer l.pop()
	if decl != nil {
		if params := decl.ChildByFieldName("parameters"); params != nil {
			for i := 0; i < int(params.NamedChildCount()); i++ {
				p := params.NamedChild(i)
				if p.Type() != "parameter_declaration" {
					continue
				}
				d := p.ChildByFieldName("declarator")
				if d == nil {
					continue
				}
				if v := l.varDecl(d, l.baseType(p)); v != nil {
					fn.Params = append(fn.Params, v)
				}
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Body = l.block(body)
	}
	return fn
}

func (l *lowerer) declaration(n *sitter.Node) []cast.Node {
	base := l.baseType(n)
	var out []cast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		d := n.NamedChild(i)
		switch d.Type() {
		case "identifier", "init_declarator", "pointer_declarator", "array_declarator",
			"function_declarator", "parenthesized_declarator":
			if v := l.varDecl(d, base); v != nil {
				out = append(out, v)
			}
		}
	}
	return out
}

// varDecl declares the variable named by declarator d. Function prototypes
// declare no variable and yield nil.
func (l *lowerer) varDecl(d *sitter.Node, base string) *cast.VarDecl {
	var init *sitter.Node
	if d.Type() == "init_declarator" {
		init = d.ChildByFieldName("value")
		d = d.ChildByFieldName("declarator")
	}
	ident, suffix, isFunc := unwrapDeclarator(d)
	if ident == nil {
		return nil
	}
	name := l.text(ident)
	if isFunc {
		l.scope.define(name, cast.NoVarID)
		return nil
	}

	v := &cast.VarDecl{
		Position: l.pos(ident),
		ID:       cast.VarID(len(l.vars) + 1),
		Name:     name,
		Type:     joinType(base, suffix),
	}
	l.vars = append(l.vars, v)
	// The name is in scope in its own initializer.
	l.scope.define(name, v.ID)
	if init != nil {
		v.Init = l.expr(init)
	}
	return v
}

func (l *lowerer) baseType(n *sitter.Node) string {
	var parts []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if q := n.NamedChild(i); q.Type() == "type_qualifier" {
			parts = append(parts, l.text(q))
		}
	}
	if t := n.ChildByFieldName("type"); t != nil {
		parts = append(parts, strings.Join(strings.Fields(l.text(t)), " "))
	}
	return strings.Join(parts, " ")
}

func (l *lowerer) expr(n *sitter.Node) cast.Expr {
	switch n.Type() {
	case "identifier":
		name := l.text(n)
		id, _ := l.scope.lookup(name)
		return &cast.Ident{Position: l.pos(n), Name: name, Ref: id}
	case "parenthesized_expression":
		if x := firstNamed(n); x != nil {
			return &cast.ParenExpr{Position: l.pos(n), X: l.expr(x)}
		}
	case "call_expression":
		return l.call(n)
	case "assignment_expression", "binary_expression":
		left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
		if left != nil && right != nil {
			return &cast.BinaryExpr{Position: l.pos(n), Op: l.operator(n), X: l.expr(left), Y: l.expr(right)}
		}
	case "pointer_expression", "unary_expression", "update_expression":
		if arg := n.ChildByFieldName("argument"); arg != nil {
			return &cast.UnaryExpr{Position: l.pos(n), Op: l.operator(n), X: l.expr(arg)}
		}
	case "subscript_expression":
		arg, idx := n.ChildByFieldName("argument"), n.ChildByFieldName("index")
		if idx == nil && n.NamedChildCount() > 1 {
			idx = n.NamedChild(1)
		}
		if arg != nil && idx != nil {
			return &cast.IndexExpr{Position: l.pos(n), X: l.expr(arg), Index: l.expr(idx)}
		}
	}
	return l.other(n)
}

// call records the callee name only for a direct call of a function, never
// for a call through a variable.
func (l *lowerer) call(n *sitter.Node) *cast.CallExpr {
	call := &cast.CallExpr{Position: l.pos(n)}
	if fun := n.ChildByFieldName("function"); fun != nil {
		call.Fun = l.expr(fun)
		if id, ok := call.Fun.(*cast.Ident); ok && !id.Ref.IsValid() {
			call.Callee = id.Name
		}
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			if a := args.NamedChild(i); a.Type() != "comment" {
				call.Args = append(call.Args, l.expr(a))
			}
		}
	}
	return call
}

func (l *lowerer) operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return l.text(op)
	}
	return ""
}

func (l *lowerer) other(n *sitter.Node) *cast.OtherNode {
	return &cast.OtherNode{Position: l.pos(n), Kind: n.Type(), Children: l.children(n)}
}

// unwrapDeclarator finds the identifier a declarator declares. suffix
// spells the pointer and array layers around it; isFunc is set when the
// identifier is itself declared as a function rather than a pointer to one.
func unwrapDeclarator(d *sitter.Node) (ident *sitter.Node, suffix string, isFunc bool) {
	for d != nil {
		switch d.Type() {
		case "identifier":
			return d, suffix, isFunc
		case "pointer_declarator":
			suffix += "*"
			isFunc = false
			d = d.ChildByFieldName("declarator")
		case "array_declarator":
			suffix += "[]"
			isFunc = false
			d = d.ChildByFieldName("declarator")
		case "function_declarator":
			suffix += "()"
			isFunc = true
			d = d.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			isFunc = false
			d = firstNamed(d)
		case "init_declarator":
			d = d.ChildByFieldName("declarator")
		default:
			return nil, "", false
		}
	}
	return nil, "", false
}

// functionDeclarator finds the function_declarator of a function
// definition, looking through the pointer layers of its return type.
func functionDeclarator(d *sitter.Node) *sitter.Node {
	for d != nil {
		switch d.Type() {
		case "function_declarator":
			return d
		case "pointer_declarator":
			d = d.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			d = firstNamed(d)
		default:
			return nil
		}
	}
	return nil
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			return c
		}
	}
	return nil
}

func joinType(base, suffix string) string {
	if suffix == "" {
		return base
	}
	return base + " " + suffix
}
