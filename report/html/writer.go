package html

import (
	_ "embed" // use go embed to import template
	"html/template"
	"io"

	"github.com/securego/memcheck"
)

//go:embed template.html
var templateContent string

// WriteReport write a report in html format to the output writer
func WriteReport(w io.Writer, data *memcheck.ReportInfo) error {
	t, e := template.New("memcheck").Parse(templateContent)
	if e != nil {
		return e
	}

	return t.Execute(w, data)
}
