package sarif

// Level is the severity of a result or notification
type Level string

const (
	// None is the level of results that are not failures
	None = Level("none")
	// Note is a minor problem
	Note = Level("note")
	// Warning is a problem
	Warning = Level("warning")
	// Error is a serious problem
	Error = Level("error")
	// Version is the SARIF version written
	Version = "2.1.0"
	// Schema is the URL of the SARIF 2.1.0 JSON schema
	Schema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"
)

// Report is the top level SARIF log
type Report struct {
	Schema  string `json:"$schema,omitempty"`
	Version string `json:"version"`
	Runs    []*Run `json:"runs"`
}

// Run describes a single run of an analysis tool
type Run struct {
	Tool        *Tool            `json:"tool"`
	Invocations []*Invocation    `json:"invocations,omitempty"`
	Taxonomies  []*ToolComponent `json:"taxonomies,omitempty"`
	Results     []*Result        `json:"results"`
}

// Tool describes the analysis tool that was run
type Tool struct {
	Driver *ToolComponent `json:"driver"`
}

// ToolComponent is a component of a tool, or a taxonomy such as CWE
type ToolComponent struct {
	Name                                        string                    `json:"name"`
	GUID                                        string                    `json:"guid,omitempty"`
	Version                                     string                    `json:"version,omitempty"`
	SemanticVersion                             string                    `json:"semanticVersion,omitempty"`
	Organization                                string                    `json:"organization,omitempty"`
	ReleaseDateUtc                              string                    `json:"releaseDateUtc,omitempty"`
	DownloadURI                                 string                    `json:"downloadUri,omitempty"`
	InformationURI                              string                    `json:"informationUri,omitempty"`
	Language                                    string                    `json:"language,omitempty"`
	MinimumRequiredLocalizedDataSemanticVersion string                    `json:"minimumRequiredLocalizedDataSemanticVersion,omitempty"`
	IsComprehensive                             bool                      `json:"isComprehensive,omitempty"`
	ShortDescription                            *MultiformatMessageString `json:"shortDescription,omitempty"`
	Rules                                       []*ReportingDescriptor    `json:"rules,omitempty"`
	Taxa                                        []*ReportingDescriptor    `json:"taxa,omitempty"`
	SupportedTaxonomies                         []*ToolComponentReference `json:"supportedTaxonomies,omitempty"`
}

// ToolComponentReference identifies a tool component by name
type ToolComponentReference struct {
	Name string `json:"name,omitempty"`
	GUID string `json:"guid,omitempty"`
}

// ReportingDescriptor describes a rule or a taxon
type ReportingDescriptor struct {
	ID                   string                             `json:"id"`
	GUID                 string                             `json:"guid,omitempty"`
	Name                 string                             `json:"name,omitempty"`
	ShortDescription     *MultiformatMessageString          `json:"shortDescription,omitempty"`
	FullDescription      *MultiformatMessageString          `json:"fullDescription,omitempty"`
	Help                 *MultiformatMessageString          `json:"help,omitempty"`
	HelpURI              string                             `json:"helpUri,omitempty"`
	DefaultConfiguration *ReportingConfiguration            `json:"defaultConfiguration,omitempty"`
	Relationships        []*ReportingDescriptorRelationship `json:"relationships,omitempty"`
	Properties           *PropertyBag                       `json:"properties,omitempty"`
}

// ReportingConfiguration holds the default level of a rule
type ReportingConfiguration struct {
	Level Level `json:"level,omitempty"`
}

// ReportingDescriptorReference points at a rule or taxon
type ReportingDescriptorReference struct {
	ID            string                  `json:"id,omitempty"`
	GUID          string                  `json:"guid,omitempty"`
	ToolComponent *ToolComponentReference `json:"toolComponent,omitempty"`
}

// ReportingDescriptorRelationship links a rule to a taxon
type ReportingDescriptorRelationship struct {
	Target *ReportingDescriptorReference `json:"target"`
	Kinds  []string                      `json:"kinds,omitempty"`
}

// MultiformatMessageString is a message in plain text and markdown
type MultiformatMessageString struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

// Message is the message of a result or notification
type Message struct {
	Text     string `json:"text,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// Result is a single finding
type Result struct {
	RuleID     string       `json:"ruleId"`
	RuleIndex  int          `json:"ruleIndex"`
	Level      Level        `json:"level"`
	Message    *Message     `json:"message"`
	Locations  []*Location  `json:"locations,omitempty"`
	Properties *PropertyBag `json:"properties,omitempty"`
}

// Location is where a result was found
type Location struct {
	PhysicalLocation *PhysicalLocation `json:"physicalLocation,omitempty"`
}

// PhysicalLocation is a region of an artifact
type PhysicalLocation struct {
	ArtifactLocation *ArtifactLocation `json:"artifactLocation,omitempty"`
	Region           *Region           `json:"region,omitempty"`
}

// ArtifactLocation is the location of a file
type ArtifactLocation struct {
	URI string `json:"uri,omitempty"`
}

// Region is a part of a file
type Region struct {
	StartLine      int              `json:"startLine,omitempty"`
	StartColumn    int              `json:"startColumn,omitempty"`
	EndLine        int              `json:"endLine,omitempty"`
	EndColumn      int              `json:"endColumn,omitempty"`
	SourceLanguage string           `json:"sourceLanguage,omitempty"`
	Snippet        *ArtifactContent `json:"snippet,omitempty"`
}

// ArtifactContent is the content of a region
type ArtifactContent struct {
	Text string `json:"text,omitempty"`
}

// Invocation describes how the tool ran
type Invocation struct {
	ExecutionSuccessful        bool            `json:"executionSuccessful"`
	ToolExecutionNotifications []*Notification `json:"toolExecutionNotifications,omitempty"`
}

// Notification reports a condition met while running the tool
type Notification struct {
	Level     Level       `json:"level,omitempty"`
	Message   *Message    `json:"message"`
	Locations []*Location `json:"locations,omitempty"`
}

// PropertyBag holds additional properties
type PropertyBag map[string]interface{}
