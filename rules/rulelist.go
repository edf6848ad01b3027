// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rules

import (
	"sort"

	"github.com/securego/memcheck/issue"
)

// Rule IDs reported by the checker.
const (
	AllocUnassigned     = "M101"
	ReallocUnassigned   = "M102"
	ReallocNotVariable  = "M103"
	ReallocSameVariable = "M104"
	ReallocIntoOwned    = "M105"

	DoubleFree      = "M201"
	FreeUnknown     = "M202"
	FreeNotVariable = "M203"

	DerefFreed     = "M301"
	DerefUnknown   = "M302"
	DerefUntracked = "M303"

	AliasOwned       = "M401"
	OverwriteOwned   = "M402"
	OverwriteUnknown = "M403"

	ReturnOwned   = "M501"
	ReturnFreed   = "M502"
	ReturnUnknown = "M503"

	Leak        = "M601"
	LeakUnknown = "M602"
)

// RuleDefinition describes one kind of diagnostic
type RuleDefinition struct {
	ID          string
	Description string
	Severity    issue.Score
	Confidence  issue.Score
}

// MetaData returns what the rule attaches to each issue it raises
func (r RuleDefinition) MetaData() issue.MetaData {
	return issue.MetaData{
		ID:         r.ID,
		Severity:   r.Severity,
		Confidence: r.Confidence,
		What:       r.Description,
	}
}

// RuleList is a list of rule definitions keyed by rule ID
type RuleList map[string]RuleDefinition

// IDs returns the rule IDs of the list in ascending order
func (rl RuleList) IDs() []string {
	ids := make([]string, 0, len(rl))
	for id := range rl {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Enabled reports whether the rule is part of the list
func (rl RuleList) Enabled(id string) bool {
	_, ok := rl[id]
	return ok
}

// RuleFilter can be used to include or exclude a rule depending on the return
// value of the function
type RuleFilter func(string) bool

// NewRuleFilter is a closure that will include/exclude the rule ID passed in
// based on the action supplied
func NewRuleFilter(action bool, ruleIDs ...string) RuleFilter {
	rulelist := make(map[string]bool)
	for _, rule := range ruleIDs {
		rulelist[rule] = true
	}
	return func(rule string) bool {
		if _, found := rulelist[rule]; found {
			return action
		}
		return !action
	}
}

// Generate the list of rules to use
func Generate(filters ...RuleFilter) RuleList {
	rules := []RuleDefinition{
		// allocation
		{AllocUnassigned, "Allocation is not assigned to a variable", issue.Medium, issue.High},
		{ReallocUnassigned, "Reallocation is not assigned to a variable", issue.Medium, issue.High},
		{ReallocNotVariable, "realloc is not called with a variable", issue.Low, issue.Medium},
		{ReallocSameVariable, "Reallocation into the variable being reallocated", issue.Medium, issue.High},
		{ReallocIntoOwned, "Reallocation into a variable that still owns heap memory", issue.Medium, issue.Medium},

		// release
		{DoubleFree, "Double free", issue.High, issue.Medium},
		{FreeUnknown, "Free of a pointer in unknown state", issue.Medium, issue.Low},
		{FreeNotVariable, "free is not called with a variable", issue.Medium, issue.Medium},

		// write through pointer
		{DerefFreed, "Dereference or index of freed memory", issue.High, issue.Medium},
		{DerefUnknown, "Dereference or index of memory in unknown state", issue.Medium, issue.Low},
		{DerefUntracked, "Write through a pointer with no tracked allocation", issue.Medium, issue.Low},

		// assignment
		{AliasOwned, "Aliasing a pointer that still owns heap memory", issue.Medium, issue.Medium},
		{OverwriteOwned, "Overwriting a variable without freeing its memory", issue.Medium, issue.Medium},
		{OverwriteUnknown, "Overwriting a variable in unknown state", issue.Low, issue.Low},

		// return
		{ReturnOwned, "Returning a pointer that still owns heap memory", issue.Medium, issue.Medium},
		{ReturnFreed, "Returning a dangling pointer to freed memory", issue.High, issue.Medium},
		{ReturnUnknown, "Returning a pointer in unknown state", issue.Low, issue.Low},

		// end of unit
		{Leak, "Potentially unfreed memory", issue.Medium, issue.Medium},
		{LeakUnknown, "Memory state unknown at end of unit", issue.Low, issue.Low},
	}

	ruleMap := make(map[string]RuleDefinition)

RULES:
	for _, rule := range rules {
		for _, filter := range filters {
			if filter(rule.ID) {
				continue RULES
			}
		}
		ruleMap[rule.ID] = rule
	}
	return ruleMap
}
