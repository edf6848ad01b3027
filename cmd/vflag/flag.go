package vflag

import (
	"fmt"
	"regexp"
	"strings"
)

var ruleID = regexp.MustCompile(`^M[1-9][0-9]{2}$`)

// ValidatedFlag is a comma separated list of rule IDs
type ValidatedFlag struct {
	Value string
}

func (f *ValidatedFlag) String() string {
	return f.Value
}

// Set will be called for flag that is of validateFlag type
func (f *ValidatedFlag) Set(value string) error {
	if strings.HasPrefix(value, "-") {
		return fmt.Errorf("expected a list of rule IDs, got flag %q", value)
	}
	var ids []string
	for _, id := range strings.Split(value, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !ruleID.MatchString(id) {
			return fmt.Errorf("invalid rule ID %q", id)
		}
		ids = append(ids, id)
	}
	f.Value = strings.Join(ids, ",")
	return nil
}

// IDs returns the rule IDs of the flag, nil when it is unset
func (f *ValidatedFlag) IDs() []string {
	if f.Value == "" {
		return nil
	}
	return strings.Split(f.Value, ",")
}
