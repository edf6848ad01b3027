package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
)

// Verdict is printed after a file that produced no error.
const Verdict = "Memory okay!"

// WriteReport writes the compiler style diagnostic stream. Each file gets its
// errors in the order they were found, then its info lines, then the verdict
// when nothing failed it.
func WriteReport(w io.Writer, data *memcheck.ReportInfo) error {
	if len(data.Units) == 0 {
		return writeFlat(w, data)
	}
	for _, unit := range data.Units {
		if err := writeUnit(w, unit); err != nil {
			return err
		}
	}
	return nil
}

func writeUnit(w io.Writer, unit *memcheck.Unit) error {
	for _, e := range unit.Errors {
		if err := writeError(w, unit.File, e); err != nil {
			return err
		}
	}
	for _, iss := range unit.Issues {
		if err := writeIssue(w, iss); err != nil {
			return err
		}
	}
	for _, note := range unit.Notes {
		if _, err := fmt.Fprintf(w, "info: %s\n", note.Message); err != nil {
			return err
		}
	}
	if unit.MemoryOK() {
		_, err := fmt.Fprintln(w, Verdict)
		return err
	}
	return nil
}

// writeFlat is used for reports that carry no per file results.
func writeFlat(w io.Writer, data *memcheck.ReportInfo) error {
	files := make([]string, 0, len(data.Errors))
	for file := range data.Errors {
		files = append(files, file)
	}
	sort.Strings(files)
	for _, file := range files {
		for _, e := range data.Errors[file] {
			if err := writeError(w, file, e); err != nil {
				return err
			}
		}
	}
	for _, iss := range data.Issues {
		if err := writeIssue(w, iss); err != nil {
			return err
		}
	}
	return nil
}

func writeIssue(w io.Writer, iss *issue.Issue) error {
	var err error
	if iss.HasPosition() {
		_, err = fmt.Fprintf(w, "%s:%s:%s: error: %s\n", iss.File, iss.Line, iss.Col, iss.What)
	} else {
		_, err = fmt.Fprintf(w, "error: %s\n", iss.What)
	}
	return err
}

func writeError(w io.Writer, file string, e memcheck.Error) error {
	var err error
	if e.Line > 0 {
		_, err = fmt.Fprintf(w, "%s:%d:%d: error: %s\n", file, e.Line, e.Column, e.Err)
	} else {
		_, err = fmt.Fprintf(w, "%s: error: %s\n", file, e.Err)
	}
	return err
}
