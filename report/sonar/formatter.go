package sonar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
	"github.com/securego/memcheck/rules"
)

const (
	// EffortMinutes effort to fix in minutes
	EffortMinutes = 5
	// EngineID names the engine in the external issues report
	EngineID = "memcheck"
	// SoftwareQuality is the quality every memory lifecycle rule affects
	SoftwareQuality = "RELIABILITY"
	// CleanCodeAttribute is the attribute every memory lifecycle rule breaks
	CleanCodeAttribute = "LOGICAL"
)

// GenerateReport converts the issues into Sonarqube external issues, with
// one rule entry per rule that raised an issue. Issues outside every root
// path are skipped.
func GenerateReport(rootPaths []string, data *memcheck.ReportInfo) (*Report, error) {
	definitions := rules.Generate()
	si := &Report{Rules: []*Rule{}, Issues: []*Issue{}}
	seen := map[string]bool{}
	for _, iss := range data.Issues {
		filePath := relativePath(iss.File, rootPaths)
		if filePath == "" {
			continue
		}
		textRange, err := parseTextRange(iss)
		if err != nil {
			return si, fmt.Errorf("issue %s in %s: %w", iss.RuleID, iss.File, err)
		}

		if !seen[iss.RuleID] {
			seen[iss.RuleID] = true
			si.Rules = append(si.Rules, newRule(iss, definitions[iss.RuleID]))
		}
		si.Issues = append(si.Issues, &Issue{
			RuleID:        iss.RuleID,
			EffortMinutes: EffortMinutes,
			PrimaryLocation: &Location{
				Message:   iss.What,
				FilePath:  filePath,
				TextRange: textRange,
			},
		})
	}
	return si, nil
}

func newRule(iss *issue.Issue, def rules.RuleDefinition) *Rule {
	name := def.Description
	if name == "" {
		name = iss.RuleID
	}
	rule := &Rule{
		ID:                 iss.RuleID,
		Name:               name,
		EngineID:           EngineID,
		CleanCodeAttribute: CleanCodeAttribute,
		Type:               "BUG",
		Severity:           getSonarSeverity(iss.Severity.String()),
		Impacts: []*Impact{{
			SoftwareQuality: SoftwareQuality,
			Severity:        getImpactSeverity(iss.Severity),
		}},
	}
	if iss.Cwe != nil {
		rule.Description = fmt.Sprintf("%s. See %s: %s", name, iss.Cwe.SprintID(), iss.Cwe.SprintURL())
	}
	return rule
}

func relativePath(file string, rootPaths []string) string {
	var filePath string
	for _, rootPath := range rootPaths {
		if strings.HasPrefix(file, rootPath+"/") {
			filePath = strings.TrimPrefix(file, rootPath+"/")
		}
	}
	return filePath
}

func parseTextRange(iss *issue.Issue) (*TextRange, error) {
	if !iss.HasPosition() {
		return nil, nil
	}
	line, err := strconv.Atoi(iss.Line)
	if err != nil {
		return nil, err
	}
	textRange := &TextRange{StartLine: line, EndLine: line}
	if col, err := strconv.Atoi(iss.Col); err == nil && col > 0 {
		textRange.StartColumn = col - 1
	}
	return textRange, nil
}

func getImpactSeverity(s issue.Score) string {
	switch s {
	case issue.High:
		return "HIGH"
	case issue.Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func getSonarSeverity(s string) string {
	switch s {
	case "LOW":
		return "MINOR"
	case "MEDIUM":
		return "MAJOR"
	case "HIGH":
		return "CRITICAL"
	default:
		return "INFO"
	}
}
