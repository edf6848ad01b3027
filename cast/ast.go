// Package cast defines the resolved C syntax tree the memory checker walks.
//
// The tree is produced by the frontend package. Names are already resolved:
// every declared variable carries a VarID and every identifier that refers to
// a variable carries the VarID of its declaration.
package cast

import "fmt"

// VarID identifies one declared variable within a translation unit. IDs are
// assigned in declaration order starting at 1 and are never reused.
type VarID uint32

// NoVarID is the zero VarID; it never identifies a variable.
const NoVarID VarID = 0

// IsValid returns true if the ID refers to a declared variable.
func (id VarID) IsValid() bool { return id != NoVarID }

// Pos is a source location. Line and Column are 1-based.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is implemented by every node of the tree. The set of implementations
// is closed to this package.
type Node interface {
	Pos() Pos
	node()
}

// Expr is a Node that can appear in expression position.
type Expr interface {
	Node
	expr()
}

// TranslationUnit is the root of one parsed source file.
type TranslationUnit struct {
	File  string
	Lines int
	Decls []Node
	// Vars lists every variable declaration of the unit; Vars[id-1] has ID id.
	Vars []*VarDecl
}

// Var returns the declaration with the given ID, or nil.
func (u *TranslationUnit) Var(id VarID) *VarDecl {
	if !id.IsValid() || int(id) > len(u.Vars) {
		return nil
	}
	return u.Vars[id-1]
}

// FuncDecl is a function definition.
type FuncDecl struct {
	Position Pos
	Name     string
	Params   []*VarDecl
	Body     *Block
}

// Block is a compound statement.
type Block struct {
	Position Pos
	List     []Node
}

// VarDecl declares one variable, with an optional initializer.
type VarDecl struct {
	Position Pos
	ID       VarID
	Name     string
	// Type is the normalized declared type, e.g. "int *" or "char **".
	Type string
	Init Expr
}

// CallExpr is a function call. Callee is the called function's name when the
// call is direct, and empty when it goes through a variable or expression.
type CallExpr struct {
	Position Pos
	Callee   string
	Fun      Expr
	Args     []Expr
}

// BinaryExpr covers binary operators and assignments; Op is the operator
// token, e.g. "=", "+=" or "==".
type BinaryExpr struct {
	Position Pos
	Op       string
	X, Y     Expr
}

// UnaryExpr covers prefix and postfix operators, including "*" (dereference)
// and "&" (address-of).
type UnaryExpr struct {
	Position Pos
	Op       string
	X        Expr
}

// IndexExpr is a subscript X[Index].
type IndexExpr struct {
	Position Pos
	X        Expr
	Index    Expr
}

// ReturnStmt is a return statement; Result is nil for a bare return.
type ReturnStmt struct {
	Position Pos
	Result   Expr
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Position Pos
	X        Expr
}

// Ident is a name. Ref is the declaration it refers to when that is a
// variable, and NoVarID for functions, enum constants and undeclared names.
type Ident struct {
	Position Pos
	Name     string
	Ref      VarID
}

// OtherNode is any construct the checker has no rule for: literals, member
// access, casts, control statements and so on. Kind is the front end's name
// for it.
type OtherNode struct {
	Position Pos
	Kind     string
	Children []Node
}

func (n *TranslationUnit) Pos() Pos { return Pos{File: n.File} }
func (n *FuncDecl) Pos() Pos        { return n.Position }
func (n *Block) Pos() Pos           { return n.Position }
func (n *VarDecl) Pos() Pos         { return n.Position }
func (n *CallExpr) Pos() Pos        { return n.Position }
func (n *BinaryExpr) Pos() Pos      { return n.Position }
func (n *UnaryExpr) Pos() Pos       { return n.Position }
func (n *IndexExpr) Pos() Pos       { return n.Position }
func (n *ReturnStmt) Pos() Pos      { return n.Position }
func (n *ParenExpr) Pos() Pos       { return n.Position }
func (n *Ident) Pos() Pos           { return n.Position }
func (n *OtherNode) Pos() Pos       { return n.Position }

func (*TranslationUnit) node() {}
func (*FuncDecl) node()        {}
func (*Block) node()           {}
func (*VarDecl) node()         {}
func (*CallExpr) node()        {}
func (*BinaryExpr) node()      {}
func (*UnaryExpr) node()       {}
func (*IndexExpr) node()       {}
func (*ReturnStmt) node()      {}
func (*ParenExpr) node()       {}
func (*Ident) node()           {}
func (*OtherNode) node()       {}

func (*CallExpr) expr()   {}
func (*BinaryExpr) expr() {}
func (*UnaryExpr) expr()  {}
func (*IndexExpr) expr()  {}
func (*ParenExpr) expr()  {}
func (*Ident) expr()      {}
func (*OtherNode) expr()  {}

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
