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

package report

import (
	"io"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/report/csv"
	"github.com/securego/memcheck/report/diag"
	"github.com/securego/memcheck/report/golint"
	"github.com/securego/memcheck/report/html"
	"github.com/securego/memcheck/report/json"
	"github.com/securego/memcheck/report/junit"
	"github.com/securego/memcheck/report/sarif"
	"github.com/securego/memcheck/report/sonar"
	"github.com/securego/memcheck/report/text"
	"github.com/securego/memcheck/report/yaml"
)

// Formats lists the accepted output formats, the default first.
var Formats = []string{"diag", "text", "json", "yaml", "csv", "junit-xml", "html", "sonarqube", "golint", "sarif"}

// IsFormat reports whether format is one of the accepted output formats.
func IsFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// CreateReport generates a report for the supplied results in the specified
// format. Unknown formats fall back to the diagnostic stream.
func CreateReport(w io.Writer, format string, enableColor bool, rootPaths []string, data *memcheck.ReportInfo) error {
	var err error
	switch format {
	case "json":
		err = json.WriteReport(w, data)
	case "yaml":
		err = yaml.WriteReport(w, data)
	case "csv":
		err = csv.WriteReport(w, data)
	case "junit-xml":
		err = junit.WriteReport(w, data)
	case "html":
		err = html.WriteReport(w, data)
	case "text":
		err = text.WriteReport(w, data, enableColor)
	case "sonarqube":
		err = sonar.WriteReport(w, data, rootPaths)
	case "golint":
		err = golint.WriteReport(w, data)
	case "sarif":
		err = sarif.WriteReport(w, data, rootPaths)
	default:
		err = diag.WriteReport(w, data)
	}
	return err
}
