// Package checker walks a resolved C translation unit and applies the heap
// lifecycle rules at every declaration, call, assignment, write through a
// pointer and return, then checks for memory still owned at the end of the
// unit.
//
// The analysis is flow-insensitive: branches and loops are walked once, in
// source order, and share a single state per variable.
package checker

import (
	"fmt"

	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/memstate"
)

// LeakMode selects how many end-of-unit offenders are reported.
type LeakMode int

const (
	// LeakFirst reports only the first offending variable in declaration order.
	LeakFirst LeakMode = iota
	// LeakAll reports every offending variable.
	LeakAll
)

// ParseLeakMode parses "first" or "all".
func ParseLeakMode(s string) (LeakMode, error) {
	switch s {
	case "", "first":
		return LeakFirst, nil
	case "all":
		return LeakAll, nil
	}
	return LeakFirst, fmt.Errorf("unknown leak report mode %q", s)
}

func (m LeakMode) String() string {
	if m == LeakAll {
		return "all"
	}
	return "first"
}

// Options tune the checker.
type Options struct {
	LeakReport LeakMode
	// ReallocInvalidatesSource marks the argument of a successful realloc as
	// Unknown instead of leaving its state untouched.
	ReallocInvalidatesSource bool
}

// Diagnostic is one policy violation.
type Diagnostic struct {
	Pos     cast.Pos
	RuleID  string
	Message string
	// Var is the name of the variable involved, if any.
	Var string
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: error: %s", d.Pos, d.Message)
	}
	return "error: " + d.Message
}

// Note is an informational message that never fails a unit.
type Note struct {
	Pos     cast.Pos
	Message string
}

// Result is the outcome of checking one translation unit.
type Result struct {
	File        string
	Diagnostics []Diagnostic
	Notes       []Note
	// Tracked is the number of variables that entered the state store.
	Tracked int
}

// MemoryOK reports whether neither the traversal nor the leak check found
// anything to report.
func (r *Result) MemoryOK() bool {
	return len(r.Diagnostics) == 0
}

// Checker applies the lifecycle rules. A Checker may be reused for several
// units, one at a time; every call to Check starts from an empty store.
type Checker struct {
	opts   Options
	unit   *cast.TranslationUnit
	store  *memstate.Store
	result *Result
}

// New creates a checker.
func New(opts Options) *Checker {
	return &Checker{opts: opts, store: memstate.NewStore()}
}

// Check analyzes one translation unit.
func (c *Checker) Check(unit *cast.TranslationUnit) *Result {
	c.unit = unit
	c.store.Reset()
	c.result = &Result{File: unit.File}

	c.walk(unit, nil)
	c.checkLeaks()

	c.result.Tracked = c.store.Len()
	res := c.result
	c.unit, c.result = nil, nil
	return res
}

func (c *Checker) report(pos cast.Pos, ruleID string, id cast.VarID, msg string) {
	d := Diagnostic{Pos: pos, RuleID: ruleID, Message: msg}
	if v := c.unit.Var(id); v != nil {
		d.Var = v.Name
		d.Message = fmt.Sprintf("%s (variable '%s')", msg, v.Name)
	}
	c.result.Diagnostics = append(c.result.Diagnostics, d)
}

func (c *Checker) note(pos cast.Pos, format string, args ...interface{}) {
	c.result.Notes = append(c.result.Notes, Note{Pos: pos, Message: fmt.Sprintf(format, args...)})
}
