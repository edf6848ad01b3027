package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
	"github.com/securego/memcheck/report/junit"
	"github.com/securego/memcheck/report/sarif"
	"github.com/securego/memcheck/report/sonar"
)

func createReportInfo() *memcheck.ReportInfo {
	iss := &issue.Issue{
		File:       "/home/src/project/leak.c",
		Line:       "4",
		Col:        "10",
		RuleID:     "M601",
		What:       "potentially unfreed memory (variable 'ptr')",
		Confidence: issue.Medium,
		Severity:   issue.Medium,
		Code:       "4:   int *ptr = malloc(4);\n",
		Cwe:        issue.GetCweByRule("M601"),
		Var:        "ptr",
	}
	return memcheck.NewReportInfo(
		[]*issue.Issue{iss},
		&memcheck.Metrics{NumFiles: 1, NumLines: 6, NumVars: 1, NumFound: 1, NumFailed: 1},
		map[string][]memcheck.Error{},
	).WithUnits([]*memcheck.Unit{
		{File: iss.File, Lines: 6, Vars: 1, Tracked: 1, Issues: []*issue.Issue{iss}},
	}).WithVersion("v1.0.0")
}

var _ = Describe("Formatter", func() {
	rootPaths := []string{"/home/src/project"}

	Context("when selecting a format", func() {
		It("should accept every listed format", func() {
			for _, format := range Formats {
				Expect(IsFormat(format)).To(BeTrue(), format)
			}
			Expect(IsFormat("pdf")).To(BeFalse())
			Expect(Formats[0]).To(Equal("diag"))
		})
	})

	Context("when creating reports", func() {
		It("should write the diagnostic stream by default", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "", false, rootPaths, createReportInfo())).Should(Succeed())
			Expect(buf.String()).To(Equal("/home/src/project/leak.c:4:10: error: potentially unfreed memory (variable 'ptr')\n"))

			other := new(bytes.Buffer)
			Expect(CreateReport(other, "diag", false, rootPaths, createReportInfo())).Should(Succeed())
			Expect(other.String()).To(Equal(buf.String()))
		})

		It("should write json", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "json", false, rootPaths, createReportInfo())).Should(Succeed())

			var raw map[string]interface{}
			Expect(json.Unmarshal(buf.Bytes(), &raw)).Should(Succeed())
			Expect(raw).To(HaveKey("Units"))
		})

		It("should write yaml", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "yaml", false, rootPaths, createReportInfo())).Should(Succeed())

			var raw map[string]interface{}
			Expect(yaml.Unmarshal(buf.Bytes(), &raw)).Should(Succeed())
			Expect(raw).To(HaveKey("issues"))
		})

		It("should write csv", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "csv", false, rootPaths, createReportInfo())).Should(Succeed())
			Expect(buf.String()).To(ContainSubstring("/home/src/project/leak.c,4,10,M601,ptr"))
		})

		It("should write junit-xml", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "junit-xml", false, rootPaths, createReportInfo())).Should(Succeed())

			var result junit.Report
			Expect(xml.Unmarshal(buf.Bytes(), &result)).Should(Succeed())
			Expect(result.Testsuites).To(HaveLen(1))
			Expect(result.Testsuites[0].Failures).To(Equal(1))
		})

		It("should write html", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "html", false, rootPaths, createReportInfo())).Should(Succeed())
			Expect(buf.String()).To(ContainSubstring("<title>Memcheck Report</title>"))
		})

		It("should write text", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "text", false, rootPaths, createReportInfo())).Should(Succeed())
			Expect(buf.String()).To(ContainSubstring("[/home/src/project/leak.c:4] - M601 (CWE-401)"))
		})

		It("should write sonarqube", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "sonarqube", false, rootPaths, createReportInfo())).Should(Succeed())

			var result sonar.Report
			Expect(json.Unmarshal(buf.Bytes(), &result)).Should(Succeed())
			Expect(result.Issues).To(HaveLen(1))
			Expect(result.Issues[0].PrimaryLocation.FilePath).To(Equal("leak.c"))
		})

		It("should write golint", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "golint", false, rootPaths, createReportInfo())).Should(Succeed())
			Expect(buf.String()).To(Equal("/home/src/project/leak.c:4:10: [CWE-401] potentially unfreed memory (variable 'ptr') (Rule:M601, Severity:MEDIUM, Confidence:MEDIUM)\n"))
		})

		It("should write sarif", func() {
			buf := new(bytes.Buffer)
			Expect(CreateReport(buf, "sarif", false, rootPaths, createReportInfo())).Should(Succeed())

			var result sarif.Report
			Expect(json.Unmarshal(buf.Bytes(), &result)).Should(Succeed())
			Expect(result.Runs[0].Results).To(HaveLen(1))
			Expect(result.Runs[0].Results[0].RuleID).To(Equal("M601"))
		})
	})
})
