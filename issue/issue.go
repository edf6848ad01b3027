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

package issue

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/cwe"
)

// Score type used by severity and confidence values
type Score int

const (
	// Low severity or confidence
	Low Score = iota
	// Medium severity or confidence
	Medium
	// High severity or confidence
	High
)

// SnippetOffset defines the number of lines captured before
// the beginning and after the end of a code snippet
const SnippetOffset = 1

// ruleToCWE maps memcheck rules to CWEs
var ruleToCWE = map[string]string{
	"M101": "401",
	"M102": "401",
	"M103": "763",
	"M104": "401",
	"M105": "401",
	"M201": "415",
	"M202": "763",
	"M203": "763",
	"M301": "416",
	"M302": "824",
	"M303": "824",
	"M401": "1341",
	"M402": "401",
	"M403": "824",
	"M501": "401",
	"M502": "825",
	"M503": "824",
	"M601": "401",
	"M602": "824",
}

// Issue is returned by the checker when it finds a lifecycle violation.
type Issue struct {
	Severity   Score         `json:"severity"`           // issue severity (how problematic it is)
	Confidence Score         `json:"confidence"`         // issue confidence (how sure we are we found it)
	Cwe        *cwe.Weakness `json:"cwe"`                // Cwe associated with RuleID
	RuleID     string        `json:"rule_id"`            // Rule that produced the issue
	What       string        `json:"details"`            // Human readable explanation
	File       string        `json:"file"`               // File name we found it in
	Code       string        `json:"code"`               // Impacted code line
	Line       string        `json:"line"`               // Line number in file
	Col        string        `json:"column"`             // Column number in line
	Var        string        `json:"variable,omitempty"` // Variable involved, if any
}

// MetaData describes the severity and confidence given to the issues of a rule.
type MetaData struct {
	ID         string
	Severity   Score
	Confidence Score
	What       string
}

// GetCweByRule retrieves a cwe weakness for a given RuleID
func GetCweByRule(id string) *cwe.Weakness {
	cweID, ok := ruleToCWE[id]
	if ok && cweID != "" {
		return cwe.Get(cweID)
	}
	return nil
}

// FileLocation point out the file path and line number in file
func (i *Issue) FileLocation() string {
	return fmt.Sprintf("%s:%s", i.File, i.Line)
}

// HasPosition reports whether the issue points at a line.
func (i *Issue) HasPosition() bool {
	return i.Line != "" && i.Line != "0"
}

// MarshalJSON is used convert a Score object into a JSON representation
func (c Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// String converts a Score into a string
func (c Score) String() string {
	switch c {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	}
	return "UNDEFINED"
}

// codeSnippet extracts the lines start..end of r, each prefixed by its number
func codeSnippet(r io.Reader, start, end int) string {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	line := 0
	for scanner.Scan() {
		line++
		if line > end {
			break
		}
		if line >= start {
			fmt.Fprintf(&buf, "%d: %s\n", line, scanner.Text())
		}
	}
	return buf.String()
}

// New creates a new Issue at pos. The code snippet is read from pos.File when
// that file exists.
func New(pos cast.Pos, meta MetaData, what, variable string) *Issue {
	var code string
	if pos.IsValid() {
		if file, err := os.Open(pos.File); err == nil {
			defer file.Close() // #nosec
			start := pos.Line - SnippetOffset
			if start < 1 {
				start = 1
			}
			code = codeSnippet(file, start, pos.Line+SnippetOffset)
		}
	}

	iss := &Issue{
		File:       pos.File,
		RuleID:     meta.ID,
		What:       what,
		Confidence: meta.Confidence,
		Severity:   meta.Severity,
		Code:       code,
		Cwe:        GetCweByRule(meta.ID),
		Var:        variable,
	}
	if pos.IsValid() {
		iss.Line = strconv.Itoa(pos.Line)
		iss.Col = strconv.Itoa(pos.Column)
	}
	return iss
}
