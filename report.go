package memcheck

import "github.com/securego/memcheck/issue"

// ReportInfo this is report information
type ReportInfo struct {
	Errors  map[string][]Error `json:"Parse errors"`
	Issues  []*issue.Issue
	Stats   *Metrics
	Units   []*Unit `json:"Units,omitempty"`
	Version string  `json:"MemcheckVersion,omitempty"`
}

// NewReportInfo instantiate a ReportInfo
func NewReportInfo(issues []*issue.Issue, metrics *Metrics, errors map[string][]Error) *ReportInfo {
	return &ReportInfo{
		Errors: errors,
		Issues: issues,
		Stats:  metrics,
	}
}

// WithUnits adds the per file results to the report
func (r *ReportInfo) WithUnits(units []*Unit) *ReportInfo {
	r.Units = units
	return r
}

// WithVersion defines the version of memcheck used to generate the report
func (r *ReportInfo) WithVersion(version string) *ReportInfo {
	r.Version = version
	return r
}
