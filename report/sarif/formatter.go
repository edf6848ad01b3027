package sarif

import (
	"sort"
	"strconv"
	"strings"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
)

const (
	// ToolName names the driver of the SARIF run
	ToolName = "memcheck"
	// ToolURI is the driver's information URI
	ToolURI = "https://github.com/securego/memcheck/"
)

// GenerateReport converts a memcheck report to a SARIF report. Parse errors
// become tool execution notifications.
func GenerateReport(rootPaths []string, data *memcheck.ReportInfo) (*Report, error) {
	var rules []*ReportingDescriptor
	var taxa []*ReportingDescriptor
	weaknesses := make(map[string]bool)
	for _, iss := range data.Issues {
		if iss.Cwe != nil && !weaknesses[iss.Cwe.ID] {
			weaknesses[iss.Cwe.ID] = true
			taxa = append(taxa, newTaxon(iss.Cwe))
		}
		if !hasRule(rules, iss.RuleID) {
			rules = append(rules, newRule(iss))
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	sort.Slice(taxa, func(i, j int) bool { return taxa[i].ID < taxa[j].ID })

	ruleIndex := make(map[string]int, len(rules))
	for i, r := range rules {
		ruleIndex[r.ID] = i
	}

	results := []*Result{}
	for _, iss := range data.Issues {
		result, err := newResult(iss, ruleIndex[iss.RuleID], rootPaths)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	run := &Run{
		Tool:        &Tool{Driver: newDriver(rules, data.Version)},
		Invocations: []*Invocation{buildInvocation(data.Errors, rootPaths)},
		Taxonomies:  []*ToolComponent{newTaxonomy(taxa)},
		Results:     results,
	}
	return &Report{Version: Version, Schema: Schema, Runs: []*Run{run}}, nil
}

func hasRule(rules []*ReportingDescriptor, id string) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

func newResult(iss *issue.Issue, ruleIndex int, rootPaths []string) (*Result, error) {
	result := &Result{
		RuleID:    iss.RuleID,
		RuleIndex: ruleIndex,
		Level:     getSarifLevel(iss.Severity.String()),
		Message:   &Message{Text: iss.What},
	}
	if iss.Var != "" {
		result.Properties = &PropertyBag{"variable": iss.Var}
	}
	if !iss.HasPosition() {
		return result, nil
	}
	line, err := strconv.Atoi(iss.Line)
	if err != nil {
		return nil, err
	}
	col, err := strconv.Atoi(iss.Col)
	if err != nil {
		return nil, err
	}
	result.Locations = []*Location{newLocation(relativePath(iss.File, rootPaths), line, col, snippetLine(iss.Code, line))}
	return result, nil
}

func relativePath(file string, rootPaths []string) string {
	for _, rootPath := range rootPaths {
		if strings.HasPrefix(file, rootPath+"/") {
			return strings.TrimPrefix(file, rootPath+"/")
		}
	}
	return file
}

// buildInvocation reports every parse error as an error notification. The
// run is successful when no file failed to parse.
func buildInvocation(errors map[string][]memcheck.Error, rootPaths []string) *Invocation {
	files := make([]string, 0, len(errors))
	for file := range errors {
		files = append(files, file)
	}
	sort.Strings(files)

	invocation := &Invocation{}
	for _, file := range files {
		for _, e := range errors[file] {
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, &Notification{
				Level:     Error,
				Message:   &Message{Text: e.Err},
				Locations: []*Location{newLocation(relativePath(file, rootPaths), e.Line, e.Column, "")},
			})
		}
	}
	invocation.ExecutionSuccessful = len(invocation.ToolExecutionNotifications) == 0
	return invocation
}

func getSarifLevel(s string) Level {
	switch s {
	case "LOW":
		return Warning
	case "MEDIUM", "HIGH":
		return Error
	default:
		return Note
	}
}

