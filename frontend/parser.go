// Package frontend parses C source with tree-sitter and lowers the concrete
// syntax tree into the resolved tree of package cast.
//
// The parser works on unpreprocessed source: macros are not expanded and
// headers are not read. Names are resolved with C block scoping; a name that
// does not resolve to a variable declared in the unit is left unbound.
package frontend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/securego/memcheck/cast"
)

// SyntaxError is one error node reported by the parser.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseError is returned when a file does not parse cleanly. Analysis of the
// file must not start.
type ParseError struct {
	File   string
	Errors []SyntaxError
}

func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: syntax error", e.File)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, se := range e.Errors {
		msgs = append(msgs, se.String())
	}
	return fmt.Sprintf("%s: %s", e.File, strings.Join(msgs, "; "))
}

// Options holds the arguments handed to the front end after "--" on the
// command line.
type Options struct {
	Args []string
}

// Defines returns the macro names given with -D, in order.
func (o Options) Defines() []string {
	return o.values("-D")
}

// IncludeDirs returns the directories given with -I, in order.
func (o Options) IncludeDirs() []string {
	return o.values("-I")
}

func (o Options) values(flag string) []string {
	var out []string
	for i := 0; i < len(o.Args); i++ {
		arg := o.Args[i]
		switch {
		case arg == flag && i+1 < len(o.Args):
			i++
			out = append(out, o.Args[i])
		case strings.HasPrefix(arg, flag) && len(arg) > len(flag):
			out = append(out, arg[len(flag):])
		}
	}
	return out
}

// Parser turns C files into resolved translation units. A Parser is not safe
// for concurrent use; create one per goroutine.
type Parser struct {
	opts   Options
	parser *sitter.Parser
}

// NewParser creates a parser for C.
func NewParser(opts Options) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(c.GetLanguage())
	return &Parser{opts: opts, parser: p}
}

// Options returns the front-end arguments the parser was created with.
func (p *Parser) Options() Options {
	return p.opts
}

// ParseFile reads and parses the named file.
func (p *Parser) ParseFile(ctx context.Context, filename string) (*cast.TranslationUnit, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return p.ParseSource(ctx, filename, src)
}

// ParseSource parses src, reporting positions against filename.
func (p *Parser) ParseSource(ctx context.Context, filename string, src []byte) (*cast.TranslationUnit, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{File: filename, Errors: syntaxErrors(root, src)}
	}

	l := newLowerer(filename, src)
	unit := l.unit(root)
	unit.Lines = countLines(src)
	return unit, nil
}

func syntaxErrors(root *sitter.Node, src []byte) []SyntaxError {
	var errs []SyntaxError
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil || !n.HasError() && !n.IsMissing() {
			return
		}
		switch {
		case n.IsMissing():
			errs = append(errs, syntaxError(n, fmt.Sprintf("missing %s", n.Type())))
			return
		case n.IsError():
			errs = append(errs, syntaxError(n, fmt.Sprintf("unexpected %q", excerpt(n.Content(src)))))
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)
	return errs
}

func syntaxError(n *sitter.Node, msg string) SyntaxError {
	pt := n.StartPoint()
	return SyntaxError{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Message: msg}
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}

func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte("\n"))
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}
