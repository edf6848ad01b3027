package cast_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/cast"
)

var _ = Describe("Tree", func() {
	// int *p = malloc(4); *p = 1; return p;
	var (
		decl   *cast.VarDecl
		assign *cast.BinaryExpr
		ret    *cast.ReturnStmt
		unit   *cast.TranslationUnit
	)

	BeforeEach(func() {
		p := func() *cast.Ident { return &cast.Ident{Name: "p", Ref: 1} }
		decl = &cast.VarDecl{
			Position: cast.Pos{File: "a.c", Line: 2, Column: 10},
			ID:       1,
			Name:     "p",
			Type:     "int *",
			Init: &cast.CallExpr{
				Callee: "malloc",
				Fun:    &cast.Ident{Name: "malloc"},
				Args:   []cast.Expr{&cast.OtherNode{Kind: "number_literal"}},
			},
		}
		assign = &cast.BinaryExpr{
			Op: "=",
			X:  &cast.UnaryExpr{Op: "*", X: p()},
			Y:  &cast.OtherNode{Kind: "number_literal"},
		}
		ret = &cast.ReturnStmt{Result: &cast.ParenExpr{X: &cast.ParenExpr{X: p()}}}
		unit = &cast.TranslationUnit{
			File: "a.c",
			Decls: []cast.Node{&cast.FuncDecl{
				Name: "f",
				Body: &cast.Block{List: []cast.Node{decl, assign, ret}},
			}},
			Vars: []*cast.VarDecl{decl},
		}
	})

	It("should visit nodes in source order", func() {
		var kinds []string
		cast.Inspect(unit, func(n cast.Node) bool {
			switch n := n.(type) {
			case *cast.CallExpr:
				kinds = append(kinds, "call:"+n.Callee)
			case *cast.Ident:
				kinds = append(kinds, "ident:"+n.Name)
			case *cast.ReturnStmt:
				kinds = append(kinds, "return")
			}
			return true
		})
		Expect(kinds).Should(Equal([]string{"call:malloc", "ident:malloc", "ident:p", "return", "ident:p"}))
	})

	It("should skip children when told to", func() {
		count := 0
		cast.Inspect(unit, func(n cast.Node) bool {
			count++
			_, isDecl := n.(*cast.VarDecl)
			return !isDecl
		})
		// unit, func, block, decl, assign, unary, ident, literal, return, paren, paren, ident
		Expect(count).Should(Equal(12))
	})

	It("should look up declarations by ID", func() {
		Expect(unit.Var(1)).Should(BeIdenticalTo(decl))
		Expect(unit.Var(cast.NoVarID)).Should(BeNil())
		Expect(unit.Var(2)).Should(BeNil())
	})

	It("should strip parentheses", func() {
		id, ok := cast.Unparen(ret.Result).(*cast.Ident)
		Expect(ok).Should(BeTrue())
		Expect(id.Ref).Should(Equal(cast.VarID(1)))
	})

	It("should format positions", func() {
		Expect(decl.Pos().String()).Should(Equal("a.c:2:10"))
		Expect(unit.Pos().String()).Should(Equal("a.c"))
		Expect(unit.Pos().IsValid()).Should(BeFalse())
		Expect(cast.NoVarID.IsValid()).Should(BeFalse())
	})
})
