package text

import (
	"bufio"
	"bytes"
	_ "embed" // use go embed to import template
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/gookit/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/issue"
)

var (
	errorTheme   = color.New(color.FgLightWhite, color.BgRed)
	warningTheme = color.New(color.FgBlack, color.BgYellow)
	defaultTheme = color.New(color.FgWhite, color.BgBlack)

	titleCaser = cases.Title(language.English)

	//go:embed template.txt
	templateContent string
)

// WriteReport write a (colorized) report in text format
func WriteReport(w io.Writer, data *memcheck.ReportInfo, enableColor bool) error {
	t, e := template.
		New("memcheck").
		Funcs(plainTextFuncMap(enableColor)).
		Parse(templateContent)
	if e != nil {
		return e
	}

	return t.Execute(w, data)
}

func plainTextFuncMap(enableColor bool) template.FuncMap {
	if enableColor {
		return template.FuncMap{
			"highlight": highlight,
			"danger":    color.Danger.Render,
			"notice":    color.Notice.Render,
			"success":   color.Success.Render,
			"printCode": printCodeSnippet,
			"title":     title,
		}
	}

	// by default those functions return the given content untouched
	return template.FuncMap{
		"highlight": func(t string, s issue.Score) string {
			return t
		},
		"danger":    fmt.Sprint,
		"notice":    fmt.Sprint,
		"success":   fmt.Sprint,
		"printCode": printCodeSnippet,
		"title":     title,
	}
}

// title renders a score as "High", "Medium" or "Low"
func title(s issue.Score) string {
	return titleCaser.String(strings.ToLower(s.String()))
}

func highlight(t string, s issue.Score) string {
	switch s {
	case issue.High:
		return errorTheme.Sprint(t)
	case issue.Medium:
		return warningTheme.Sprint(t)
	default:
		return defaultTheme.Sprint(t)
	}
}

// printCodeSnippet marks the issue's line in its snippet with "  > "
func printCodeSnippet(iss *issue.Issue) string {
	line, err := strconv.Atoi(iss.Line)
	if err != nil {
		line = -1
	}
	prefix := strconv.Itoa(line) + ":"
	scanner := bufio.NewScanner(strings.NewReader(iss.Code))
	var buf bytes.Buffer
	for scanner.Scan() {
		codeLine := scanner.Text()
		if strings.HasPrefix(codeLine, prefix) {
			codeLine = "  > " + codeLine + "\n"
		} else {
			codeLine = "    " + codeLine + "\n"
		}
		buf.WriteString(codeLine)
	}
	return buf.String()
}
