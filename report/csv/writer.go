package csv

import (
	"encoding/csv"
	"io"

	"github.com/securego/memcheck"
)

// Header is the first record of the csv report
var Header = []string{"file", "line", "column", "rule", "variable", "details", "severity", "confidence", "code", "cwe"}

// WriteReport write a report in csv format to the output writer
func WriteReport(w io.Writer, data *memcheck.ReportInfo) error {
	out := csv.NewWriter(w)
	if err := out.Write(Header); err != nil {
		return err
	}
	for _, issue := range data.Issues {
		err := out.Write([]string{
			issue.File,
			issue.Line,
			issue.Col,
			issue.RuleID,
			issue.Var,
			issue.What,
			issue.Severity.String(),
			issue.Confidence.String(),
			issue.Code,
			issue.Cwe.SprintID(),
		})
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
