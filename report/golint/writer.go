package golint

import (
	"fmt"
	"io"

	"github.com/securego/memcheck"
)

// WriteReport write a report in golint format to the output writer
func WriteReport(w io.Writer, data *memcheck.ReportInfo) error {
	// Output Sample:
	// /tmp/leak.c:4:10: [CWE-401] potentially unfreed memory (variable 'ptr') (Rule:M601, Severity:MEDIUM, Confidence:MEDIUM)

	for _, issue := range data.Issues {
		what := issue.What
		if issue.Cwe != nil && issue.Cwe.ID != "" {
			what = fmt.Sprintf("[%s] %s", issue.Cwe.SprintID(), issue.What)
		}

		line, col := issue.Line, issue.Col
		if !issue.HasPosition() {
			line, col = "0", "0"
		}

		_, err := fmt.Fprintf(w, "%s:%s:%s: %s (Rule:%s, Severity:%s, Confidence:%s)\n",
			issue.File,
			line,
			col,
			what,
			issue.RuleID,
			issue.Severity.String(),
			issue.Confidence.String(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
