package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/issue"
)

var defaultIssue = issue.Issue{
	File:       "/home/src/project/list.c",
	Line:       "1",
	Col:        "1",
	RuleID:     "M601",
	What:       "potentially unfreed memory (variable 'p')",
	Confidence: issue.Medium,
	Severity:   issue.Medium,
	Code:       "1: int *p = malloc(4);",
	Cwe:        issue.GetCweByRule("M601"),
}

func createIssue() issue.Issue {
	return defaultIssue
}

func firstIs(first, second *issue.Issue) {
	slice := []*issue.Issue{second, first}

	sortIssues(slice)

	ExpectWithOffset(1, slice[0]).To(Equal(first))
}

var _ = Describe("Sorting by Severity", func() {
	It("sorts by severity", func() {
		high := createIssue()
		high.Severity = issue.High
		low := createIssue()
		low.Severity = issue.Low
		firstIs(&high, &low)
	})

	Context("Severity is same", func() {
		It("sorts by rule", func() {
			first := createIssue()
			first.RuleID = "M201"
			second := createIssue()
			firstIs(&first, &second)
		})
	})

	Context("Severity and rule are same", func() {
		It("sorts by file", func() {
			first := createIssue()
			first.File = "/home/src/project/a.c"
			second := createIssue()
			firstIs(&first, &second)
		})
	})

	Context("Severity, rule and file are same", func() {
		It("sorts by line", func() {
			first := createIssue()
			second := createIssue()
			second.Line = "10"
			firstIs(&first, &second)
		})
	})
})
