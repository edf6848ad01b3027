package junit

import (
	"encoding/xml"
	"fmt"
	"html"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
)

// Report is the root of a JUnit XML document
type Report struct {
	XMLName    xml.Name     `xml:"testsuites"`
	Tests      int          `xml:"tests,attr"`
	Failures   int          `xml:"failures,attr"`
	Errors     int          `xml:"errors,attr"`
	Testsuites []*Testsuite `xml:"testsuite"`
}

// Testsuite holds the results of one C file
type Testsuite struct {
	XMLName   xml.Name    `xml:"testsuite"`
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Errors    int         `xml:"errors,attr"`
	Testcases []*Testcase `xml:"testcase"`
}

// Testcase is one issue, one parse error, or the verdict of a clean file
type Testcase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	Classname string   `xml:"classname,attr,omitempty"`
	Failure   *Result  `xml:"failure,omitempty"`
	Error     *Result  `xml:"error,omitempty"`
}

// Result is the body of a failure or an error
type Result struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
	Text    string `xml:",innerxml"`
}

func (s *Testsuite) pass(name string) {
	s.Tests++
	s.Testcases = append(s.Testcases, &Testcase{Name: name})
}

func (s *Testsuite) fail(iss *issue.Issue) {
	s.Tests++
	s.Failures++
	s.Testcases = append(s.Testcases, &Testcase{
		Name:      iss.RuleID + ": " + iss.What,
		Classname: iss.RuleID,
		Failure: &Result{
			Message: "Found 1 memory lifecycle issue. See stacktrace for details.",
			Type:    iss.Cwe.SprintID(),
			Text:    generatePlaintext(iss),
		},
	})
}

func (s *Testsuite) parseError(file string, e memcheck.Error) {
	s.Tests++
	s.Errors++
	s.Testcases = append(s.Testcases, &Testcase{
		Name: fmt.Sprintf("%s:%d:%d", file, e.Line, e.Column),
		Error: &Result{
			Message: "File could not be parsed.",
			Text:    html.EscapeString(e.Err),
		},
	})
}
