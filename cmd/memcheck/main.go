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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/cmd/vflag"
	"github.com/securego/memcheck/report"
	"github.com/securego/memcheck/rules"
)

const (
	usageText = `
memcheck - C heap lifecycle checker

memcheck follows every pointer returned by malloc, calloc and realloc through
a C translation unit and reports leaks, double frees, writes through freed
memory and other ownership mistakes.

VERSION: %s
GIT TAG: %s
BUILD DATE: %s

USAGE:

	# Check a single file
	$ memcheck list.c

	# Check every C file under the current directory and save results in
	# json format.
	$ memcheck -fmt=json -out=results.json ./...

	# Run a specific set of rules (by default all rules will be run):
	$ memcheck -include=M201,M301,M601 ./...

	# Run all rules except the provided
	$ memcheck -exclude=M303 src/...

	# Pass arguments to the C front end
	$ memcheck main.c -- -Iinclude -DNDEBUG

`
	// frontendSeparator separates the source paths from the front-end arguments
	frontendSeparator = "--"
)

var (
	// format output
	flagFormat = flag.String("fmt", "diag", "Set output format. Valid options are: "+strings.Join(report.Formats, ", "))

	// output file
	flagOutput = flag.String("out", "", "Set output file for results")

	// config file
	flagConfig = flag.String("conf", "", "Path to optional config file (JSON, or YAML when ending in .yml/.yaml)")

	// quiet
	flagQuiet = flag.Bool("quiet", false, "Only show output when errors are found")

	// rules to explicitly include
	flagRulesInclude vflag.ValidatedFlag

	// rules to explicitly exclude
	flagRulesExclude vflag.ValidatedFlag

	// per path rule exclusions
	flagExcludeRules = flag.String("exclude-rules", "", `Exclude rules for specific paths, e.g. "third_party/:M601,M602;_test\.c$:*"`)

	// directories to skip when walking
	flagDirsExclude filelist

	// log to file or stderr
	flagLogfile = flag.String("log", "", "Log messages to file rather than stderr")

	// sort the issues by severity
	flagSortIssues = flag.Bool("sort", false, "Sort issues by severity in the reports that list issues")

	// leak reporting mode
	flagLeakReport = flag.String("leak-report", "", "Report the first (default) or all leaked variables of a file: first, all")

	// realloc marks its argument unknown
	flagReallocInvalidates = flag.Bool("realloc-invalidates-source", false, "Mark the argument of a successful realloc as unknown")

	// number of files analyzed in parallel
	flagConcurrency = flag.Int("concurrency", 0, "Number of files analyzed in parallel (default number of CPUs)")

	// exit with an error code when a file fails
	flagFail = flag.Bool("fail", false, "Exit with code 1 when any file has memory issues")

	// colors in the text report
	flagColor = flag.Bool("color", true, "Use colors in the text report written to stdout")

	// print version and quit with exit code 0
	flagVersion = flag.Bool("version", false, "Print version and quit with exit code 0")

	logger *log.Logger
)

func init() {
	flag.Var(&flagRulesInclude, "include", "Comma separated list of rules IDs to include. (see rule list)")
	flag.Var(&flagRulesExclude, "exclude", "Comma separated list of rules IDs to exclude. (see rule list)")
	flag.Var(&flagDirsExclude, "exclude-dir", "Exclude directory from scan. Can be also used multiple times or as a comma separated list")
}

// #nosec
func usage() {
	usageText := fmt.Sprintf(usageText, Version, GitTag, BuildDate)
	fmt.Fprintln(os.Stderr, usageText)
	fmt.Fprint(os.Stderr, "OPTIONS:\n\n")
	flag.PrintDefaults()
	fmt.Fprint(os.Stderr, "\n\nRULES:\n\n")

	rl := rules.Generate()
	for _, id := range rl.IDs() {
		fmt.Fprintf(os.Stderr, "\t%s: %s\n", id, rl[id].Description)
	}
	fmt.Fprint(os.Stderr, "\n")
}

func loadConfig(configFile string) (memcheck.Config, error) {
	config := memcheck.NewConfig()
	if configFile != "" {
		var err error
		config, err = memcheck.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
	}
	if *flagLeakReport != "" {
		config.SetGlobal(memcheck.LeakReport, *flagLeakReport)
	}
	if *flagReallocInvalidates {
		config.SetGlobal(memcheck.ReallocInvalidatesSource, "true")
	}
	if *flagConcurrency > 0 {
		config.SetGlobal(memcheck.Concurrency, strconv.Itoa(*flagConcurrency))
	}
	if *flagExcludeRules != "" {
		cliRules, err := memcheck.ParseCLIExcludeRules(*flagExcludeRules)
		if err != nil {
			return nil, err
		}
		configRules, err := config.GetExcludeRules()
		if err != nil {
			return nil, err
		}
		config.Set(memcheck.ExcludeRulesKey, memcheck.MergeExcludeRules(configRules, cliRules))
	}
	return config, nil
}

func loadRules(include, exclude []string) rules.RuleList {
	var filters []rules.RuleFilter
	if len(include) > 0 {
		logger.Printf("Including rules: %s", strings.Join(include, ", "))
		filters = append(filters, rules.NewRuleFilter(false, include...))
	} else {
		logger.Println("Including rules: default")
	}

	if len(exclude) > 0 {
		logger.Printf("Excluding rules: %s", strings.Join(exclude, ", "))
		filters = append(filters, rules.NewRuleFilter(true, exclude...))
	} else {
		logger.Println("Excluding rules: default")
	}
	return rules.Generate(filters...)
}

// splitArgs separates the source paths from the front-end arguments that
// follow "--".
func splitArgs(args []string) (paths, frontendArgs []string) {
	for i, arg := range args {
		if arg == frontendSeparator {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func sourcePaths(args []string, excludedDirs []string) ([]string, error) {
	excludes := memcheck.ExcludedDirsRegExp(excludedDirs)
	var paths []string
	seen := make(map[string]bool)
	for _, arg := range args {
		found, err := memcheck.SourcePaths(arg, excludes)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	return paths, nil
}

func getRootPaths(paths []string) []string {
	rootPaths := []string{}
	for _, path := range paths {
		rootPath, err := memcheck.RootPath(path)
		if err != nil {
			logger.Fatal(fmt.Errorf("failed to get the root path of the source paths: %w", err))
		}
		rootPaths = append(rootPaths, rootPath)
	}
	return rootPaths
}

func saveReport(filename, format string, rootPaths []string, reportInfo *memcheck.ReportInfo) error {
	if filename != "" {
		outfile, err := os.Create(filename) // #nosec G304
		if err != nil {
			return err
		}
		defer outfile.Close() // #nosec G307
		return report.CreateReport(outfile, format, false, rootPaths, reportInfo)
	}
	return report.CreateReport(os.Stdout, format, *flagColor, rootPaths, reportInfo)
}

// exitCode is 1 when a file could not be parsed, or with fail set when any
// file has issues
func exitCode(errors map[string][]memcheck.Error, failed []string, fail bool) int {
	if len(errors) > 0 {
		return 1
	}
	if fail && len(failed) > 0 {
		return 1
	}
	return 0
}

func main() {
	// Makes sure some version information is set
	prepareVersionInfo()

	// Setup usage description
	flag.Usage = usage

	// Parse command line arguments
	flag.Parse()

	if *flagVersion {
		fmt.Printf("Version: %s\nGit tag: %s\nBuild date: %s\n", Version, GitTag, BuildDate)
		os.Exit(0)
	}

	if !report.IsFormat(*flagFormat) {
		fmt.Fprintf(os.Stderr, "\nError: unknown output format %q\n", *flagFormat) // #nosec
		flag.Usage()
		os.Exit(1)
	}

	args, frontendArgs := splitArgs(flag.Args())
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "\nError: FILE [FILE...] or './...' expected\n") // #nosec
		flag.Usage()
		os.Exit(1)
	}

	// Setup logging
	var logWriter io.WriteCloser = os.Stderr
	if *flagLogfile != "" {
		var e error
		logWriter, e = os.Create(*flagLogfile) // #nosec G304
		if e != nil {
			flag.Usage()
			log.Fatal(e)
		}
	}

	if *flagQuiet {
		logger = log.New(io.Discard, "", 0)
	} else {
		logger = log.New(logWriter, "[memcheck] ", log.LstdFlags)
	}

	// Load config
	config, err := loadConfig(*flagConfig)
	if err != nil {
		logger.Fatal(err)
	}

	// Load enabled rule definitions
	ruleList := loadRules(flagRulesInclude.IDs(), flagRulesExclude.IDs())
	if len(ruleList) == 0 {
		logger.Fatal("No rules are configured")
	}

	// Create the analyzer
	analyzer, err := memcheck.NewAnalyzer(config, logger)
	if err != nil {
		logger.Fatal(err)
	}
	analyzer.LoadRules(ruleList)
	analyzer.SetFrontendArgs(frontendArgs...)

	paths, err := sourcePaths(args, flagDirsExclude)
	if err != nil {
		logger.Fatal(err)
	}
	if len(paths) == 0 {
		logger.Fatal("No C source files found")
	}
	logger.Printf("Analyzing %d files", len(paths))

	if err := analyzer.Process(context.Background(), paths...); err != nil {
		logger.Fatal(err)
	}

	// Collect the results
	issues, metrics, errors := analyzer.Report()
	failed := analyzer.Failed()

	// Exit quietly if nothing was found
	if len(issues) == 0 && len(errors) == 0 && *flagQuiet {
		os.Exit(0)
	}

	// Sort the issue by severity
	if *flagSortIssues {
		sortIssues(issues)
	}

	reportInfo := memcheck.NewReportInfo(issues, metrics, errors).
		WithUnits(analyzer.Units()).
		WithVersion(Version)
	if err := saveReport(*flagOutput, *flagFormat, getRootPaths(args), reportInfo); err != nil {
		logger.Fatal(err)
	}

	os.Exit(exitCode(errors, failed, *flagFail))
}
