package sarif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/securego/memcheck/cwe"
	"github.com/securego/memcheck/issue"
)

// sourceLanguage is the language of every region memcheck reports
const sourceLanguage = "c"

func text(s string) *MultiformatMessageString {
	return &MultiformatMessageString{Text: s}
}

func uuid3(value string) string {
	return uuid.NewMD5(uuid.Nil, []byte(value)).String()
}

func cweReference() *ToolComponentReference {
	return &ToolComponentReference{Name: cwe.Acronym, GUID: uuid3(cwe.Acronym)}
}

// newRule describes the rule of iss. The variable suffix is stripped from
// the message so that every issue of the rule shares the description.
func newRule(iss *issue.Issue) *ReportingDescriptor {
	name := iss.RuleID
	var relationships []*ReportingDescriptorRelationship
	if iss.Cwe != nil {
		name = iss.Cwe.Name
		relationships = append(relationships, &ReportingDescriptorRelationship{
			Target: &ReportingDescriptorReference{
				ID:            iss.Cwe.ID,
				GUID:          uuid3(iss.Cwe.SprintID()),
				ToolComponent: cweReference(),
			},
			Kinds: []string{"superset"},
		})
	}
	what := strings.TrimSuffix(iss.What, fmt.Sprintf(" (variable '%s')", iss.Var))
	return &ReportingDescriptor{
		ID:               iss.RuleID,
		Name:             name,
		ShortDescription: text(what),
		FullDescription:  text(what),
		Help: text(fmt.Sprintf("%s\nSeverity: %s\nConfidence: %s\n",
			what, iss.Severity.String(), iss.Confidence.String())),
		Properties: &PropertyBag{
			"tags":      []string{"memory", iss.Severity.String()},
			"precision": strings.ToLower(iss.Confidence.String()),
		},
		DefaultConfiguration: &ReportingConfiguration{Level: getSarifLevel(iss.Severity.String())},
		Relationships:        relationships,
	}
}

func newTaxon(weakness *cwe.Weakness) *ReportingDescriptor {
	return &ReportingDescriptor{
		ID:               weakness.ID,
		GUID:             uuid3(weakness.SprintID()),
		HelpURI:          weakness.SprintURL(),
		FullDescription:  text(weakness.Description),
		ShortDescription: text(weakness.Name),
	}
}

func newTaxonomy(taxa []*ReportingDescriptor) *ToolComponent {
	return &ToolComponent{
		Name:             cwe.Acronym,
		GUID:             uuid3(cwe.Acronym),
		Version:          cwe.Version,
		InformationURI:   cwe.InformationURI,
		ReleaseDateUtc:   cwe.ReleaseDateUtc,
		DownloadURI:      cwe.DownloadURI,
		Organization:     cwe.Organization,
		ShortDescription: text(cwe.Description),
		IsComprehensive:  true,
		Language:         "en",
		MinimumRequiredLocalizedDataSemanticVersion: cwe.Version,
		Taxa: taxa,
	}
}

func newDriver(rules []*ReportingDescriptor, version string) *ToolComponent {
	semanticVersion := strings.TrimPrefix(version, "v")
	if semanticVersion == "" {
		semanticVersion = "devel"
	}
	return &ToolComponent{
		Name:                ToolName,
		GUID:                uuid3(ToolName),
		Version:             version,
		SemanticVersion:     semanticVersion,
		InformationURI:      ToolURI,
		SupportedTaxonomies: []*ToolComponentReference{cweReference()},
		Rules:               rules,
	}
}

// newLocation points at file, and at a single line and column when line is
// positive
func newLocation(file string, line, col int, snippet string) *Location {
	physical := &PhysicalLocation{ArtifactLocation: &ArtifactLocation{URI: file}}
	if line > 0 {
		physical.Region = &Region{
			StartLine:      line,
			EndLine:        line,
			StartColumn:    col,
			EndColumn:      col,
			SourceLanguage: sourceLanguage,
		}
		if snippet != "" {
			physical.Region.Snippet = &ArtifactContent{Text: snippet}
		}
	}
	return &Location{PhysicalLocation: physical}
}

// snippetLine returns the source of line from a numbered code snippet
func snippetLine(code string, line int) string {
	prefix := strconv.Itoa(line) + ":"
	for _, codeLine := range strings.Split(code, "\n") {
		if strings.HasPrefix(codeLine, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(codeLine, prefix))
		}
	}
	return ""
}
