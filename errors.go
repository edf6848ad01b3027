package memcheck

import (
	"errors"
	"sort"

	"github.com/securego/memcheck/frontend"
)

// Error is used when a source file cannot be parsed
type Error struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Err    string `json:"error"`
}

// NewError creates Error object
func NewError(line, column int, err string) *Error {
	return &Error{
		Line:   line,
		Column: column,
		Err:    err,
	}
}

// errorsFrom converts a front end failure into report errors. Failures
// without syntax errors, such as unreadable files, yield one positionless
// error.
func errorsFrom(err error) []Error {
	var perr *frontend.ParseError
	if !errors.As(err, &perr) || len(perr.Errors) == 0 {
		return []Error{*NewError(0, 0, err.Error())}
	}
	out := make([]Error, 0, len(perr.Errors))
	for _, se := range perr.Errors {
		out = append(out, *NewError(se.Line, se.Column, se.Message))
	}
	return out
}

// sortErrors sorts the parse errors by line
func sortErrors(allErrors map[string][]Error) {
	for _, errors := range allErrors {
		sort.Slice(errors, func(i, j int) bool {
			if errors[i].Line == errors[j].Line {
				return errors[i].Column <= errors[j].Column
			}
			return errors[i].Line < errors[j].Line
		})
	}
}
