package testutils

import "github.com/securego/memcheck"

// CodeSample encapsulates a set of C source files that parse, and how many
// issues of the rule under test should be found in them. Config replaces the
// default configuration when set.
type CodeSample struct {
	Code   []string
	Errors int
	Config memcheck.Config
}

// withGlobal returns a configuration with one global option set
func withGlobal(option memcheck.GlobalOption, value string) memcheck.Config {
	config := memcheck.NewConfig()
	config.SetGlobal(option, value)
	return config
}
