package junit

import (
	"html"
	"sort"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
)

func generatePlaintext(iss *issue.Issue) string {
	return "Results:\n" +
		"[" + iss.FileLocation() + "] - " +
		iss.What + " (Rule: " + iss.RuleID +
		", Confidence: " + iss.Confidence.String() +
		", Severity: " + iss.Severity.String() +
		", CWE: " + iss.Cwe.SprintID() + ")\n" + "> " + html.EscapeString(iss.Code)
}

// GenerateReport builds one testsuite per file, in the order the files were
// analyzed. Each issue is a failing testcase, each parse error an erroring
// one, and a file without either gets a single passing testcase.
func GenerateReport(data *memcheck.ReportInfo) Report {
	var xmlReport Report
	if len(data.Units) == 0 {
		generateFlat(&xmlReport, data)
	}
	for _, unit := range data.Units {
		suite := &Testsuite{Name: unit.File}
		for _, e := range unit.Errors {
			suite.parseError(unit.File, e)
		}
		for _, iss := range unit.Issues {
			suite.fail(iss)
		}
		if unit.MemoryOK() {
			suite.pass(unit.File)
		}
		xmlReport.add(suite)
	}
	return xmlReport
}

// generateFlat groups the issues and errors by file when the report has no
// per file results.
func generateFlat(xmlReport *Report, data *memcheck.ReportInfo) {
	suites := map[string]*Testsuite{}
	var files []string
	suite := func(file string) *Testsuite {
		s, ok := suites[file]
		if !ok {
			s = &Testsuite{Name: file}
			suites[file] = s
			files = append(files, file)
		}
		return s
	}
	for file, errs := range data.Errors {
		for _, e := range errs {
			suite(file).parseError(file, e)
		}
	}
	for _, iss := range data.Issues {
		suite(iss.File).fail(iss)
	}
	sort.Strings(files)
	for _, file := range files {
		xmlReport.add(suites[file])
	}
}

func (r *Report) add(s *Testsuite) {
	r.Tests += s.Tests
	r.Failures += s.Failures
	r.Errors += s.Errors
	r.Testsuites = append(r.Testsuites, s)
}
