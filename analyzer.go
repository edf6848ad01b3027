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

// Package memcheck holds the central scanning logic used by memcheck: it
// parses C files, runs the heap lifecycle checker over each one and collects
// the resulting issues.
package memcheck

import (
	"context"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/securego/memcheck/checker"
	"github.com/securego/memcheck/frontend"
	"github.com/securego/memcheck/issue"
	"github.com/securego/memcheck/rules"
)

// Metrics used when reporting information about a scanning run.
type Metrics struct {
	NumFiles  int `json:"files"`
	NumLines  int `json:"lines"`
	NumVars   int `json:"variables"`
	NumFound  int `json:"found"`
	NumFailed int `json:"failed"`
}

// Unit is the result of analyzing one file.
type Unit struct {
	File    string         `json:"file"`
	Lines   int            `json:"lines"`
	Vars    int            `json:"variables"`
	Tracked int            `json:"tracked"`
	Issues  []*issue.Issue `json:"issues"`
	Notes   []checker.Note `json:"notes,omitempty"`
	Errors  []Error        `json:"errors,omitempty"`
}

// Parsed reports whether the file was analyzed at all.
func (u *Unit) Parsed() bool {
	return len(u.Errors) == 0
}

// MemoryOK reports whether the file was analyzed and no issue remained
// after rule selection and path exclusions.
func (u *Unit) MemoryOK() bool {
	return u.Parsed() && len(u.Issues) == 0
}

// Analyzer is the main object of memcheck. It runs one checker traversal per
// file, possibly several files in parallel.
type Analyzer struct {
	config      Config
	logger      *log.Logger
	ruleset     rules.RuleList
	opts        checker.Options
	frontend    frontend.Options
	exclude     *PathExclusionFilter
	concurrency int

	mu     sync.Mutex
	issues []*issue.Issue
	units  []*Unit
	errors map[string][]Error
	stats  *Metrics
}

// NewAnalyzer builds a new analyzer. Invalid global options or exclude
// rules in conf are reported as errors.
func NewAnalyzer(conf Config, logger *log.Logger) (*Analyzer, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[memcheck] ", log.LstdFlags)
	}
	opts, err := conf.CheckerOptions()
	if err != nil {
		return nil, err
	}
	concurrency, err := conf.GetConcurrency(runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	excludeRules, err := conf.GetExcludeRules()
	if err != nil {
		return nil, err
	}
	exclude, err := NewPathExclusionFilter(excludeRules)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		config:      conf,
		logger:      logger,
		ruleset:     rules.Generate(),
		opts:        opts,
		exclude:     exclude,
		concurrency: concurrency,
		issues:      make([]*issue.Issue, 0, 16),
		errors:      make(map[string][]Error),
		stats:       &Metrics{},
	}, nil
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// LoadRules selects the rules whose issues are reported. Diagnostics of
// other rules are dropped and do not fail a file.
func (a *Analyzer) LoadRules(ruleDefinitions rules.RuleList) {
	a.ruleset = ruleDefinitions
}

// SetFrontendArgs sets the arguments handed to the C front end.
func (a *Analyzer) SetFrontendArgs(args ...string) {
	a.frontend = frontend.Options{Args: args}
}

// Process analyzes the given C files. Files that fail to parse are recorded
// as errors and do not stop the others; only cancellation of ctx aborts the
// run.
func (a *Analyzer) Process(ctx context.Context, paths ...string) error {
	if len(a.frontend.Args) > 0 {
		a.logger.Printf("Front-end arguments %v are not applied: macros %v and include dirs %v are not expanded",
			a.frontend.Args, a.frontend.Defines(), a.frontend.IncludeDirs())
	}

	results := make([]*Unit, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			unit, err := a.check(ctx, path)
			if err != nil {
				return err
			}
			results[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, unit := range results {
		a.record(unit)
	}
	return nil
}

func (a *Analyzer) check(ctx context.Context, path string) (*Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Println("Checking file:", path)
	tu, err := frontend.NewParser(a.frontend).ParseFile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.Printf("Error parsing %s: %v", path, err)
		return &Unit{File: path, Errors: errorsFrom(err)}, nil
	}

	res := checker.New(a.opts).Check(tu)
	unit := &Unit{
		File:    path,
		Lines:   tu.Lines,
		Vars:    len(tu.Vars),
		Tracked: res.Tracked,
		Notes:   res.Notes,
		Issues:  []*issue.Issue{},
	}
	for _, d := range res.Diagnostics {
		def, ok := a.ruleset[d.RuleID]
		if !ok {
			continue
		}
		iss := issue.New(d.Pos, def.MetaData(), d.Message, d.Var)
		if iss.File == "" {
			iss.File = path
		}
		if a.exclude.ShouldExclude(iss.File, iss.RuleID) {
			continue
		}
		unit.Issues = append(unit.Issues, iss)
	}
	return unit, nil
}

func (a *Analyzer) record(unit *Unit) {
	a.units = append(a.units, unit)
	a.stats.NumFiles++
	if !unit.Parsed() {
		a.errors[unit.File] = append(a.errors[unit.File], unit.Errors...)
		a.stats.NumFailed++
		return
	}
	a.stats.NumLines += unit.Lines
	a.stats.NumVars += unit.Vars
	a.stats.NumFound += len(unit.Issues)
	if !unit.MemoryOK() {
		a.stats.NumFailed++
	}
	a.issues = append(a.issues, unit.Issues...)
}

// Report returns the current issues discovered, the metrics about the scan
// and the parse errors per file
func (a *Analyzer) Report() ([]*issue.Issue, *Metrics, map[string][]Error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sortErrors(a.errors)
	return a.issues, a.stats, a.errors
}

// Units returns the per file results in the order the files were given.
func (a *Analyzer) Units() []*Unit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.units
}

// Failed returns the files that were not parsed or that have issues,
// sorted.
func (a *Analyzer) Failed() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var failed []string
	for _, u := range a.units {
		if !u.MemoryOK() {
			failed = append(failed, u.File)
		}
	}
	sort.Strings(failed)
	return failed
}

// Reset clears state such as issues, units and metrics from the configured analyzer
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.issues = make([]*issue.Issue, 0, 16)
	a.units = nil
	a.errors = make(map[string][]Error)
	a.stats = &Metrics{}
}
