package sonar

// TextRange is the part of a file an issue points at. Columns are zero based.
type TextRange struct {
	StartLine   int `json:"startLine"`
	EndLine     int `json:"endLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// Location is a message attached to a file region
type Location struct {
	Message   string     `json:"message"`
	FilePath  string     `json:"filePath"`
	TextRange *TextRange `json:"textRange,omitempty"`
}

// Impact is the software quality a rule affects and how badly
type Impact struct {
	SoftwareQuality string `json:"softwareQuality"`
	Severity        string `json:"severity"`
}

// Rule describes one memcheck rule to Sonarqube. Type and Severity are the
// pre 10.3 fields, still read by older servers.
type Rule struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	EngineID           string    `json:"engineId"`
	CleanCodeAttribute string    `json:"cleanCodeAttribute"`
	Type               string    `json:"type,omitempty"`
	Severity           string    `json:"severity,omitempty"`
	Impacts            []*Impact `json:"impacts"`
}

// Issue is one finding of a rule
type Issue struct {
	RuleID             string      `json:"ruleId"`
	EffortMinutes      int         `json:"effortMinutes,omitempty"`
	PrimaryLocation    *Location   `json:"primaryLocation"`
	SecondaryLocations []*Location `json:"secondaryLocations,omitempty"`
}

// Report is the generic external issues report
type Report struct {
	Rules  []*Rule  `json:"rules"`
	Issues []*Issue `json:"issues"`
}
