package memcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// sourceExts lists the extensions of the files analyzed when a directory is
// given.
var sourceExts = map[string]bool{".c": true}

// SourcePaths expands root into the C source files to analyze. A file is
// returned as is. A directory yields its own .c files, or with a "/..."
// suffix those of its whole tree; directories matching an exclude are
// skipped.
func SourcePaths(root string, excludes []*regexp.Regexp) ([]string, error) {
	recursive := strings.HasSuffix(root, "...")
	if recursive {
		root = filepath.Clean(strings.TrimSuffix(root, "..."))
	}

	info, err := os.Stat(root)
	if err != nil {
		if recursive && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (!recursive || isExcluded(filepath.ToSlash(path), excludes)) {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExts[filepath.Ext(path)] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing sources in %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func isExcluded(str string, excludes []*regexp.Regexp) bool {
	for _, exclude := range excludes {
		if exclude != nil && RegexMatchWithCache(exclude, str) {
			return true
		}
	}
	return false
}

// ExcludedDirsRegExp builds the regexps for a list of excluded dirs provided as strings
func ExcludedDirsRegExp(excludedDirs []string) []*regexp.Regexp {
	var exps []*regexp.Regexp
	for _, excludedDir := range excludedDirs {
		str := fmt.Sprintf(`([\\/])?%s([\\/])?`, strings.ReplaceAll(filepath.ToSlash(excludedDir), "/", `\/`))
		r := regexp.MustCompile(str)
		exps = append(exps, r)
	}
	return exps
}

// RootPath returns the absolute root path of a scan
func RootPath(root string) (string, error) {
	root = strings.TrimSuffix(root, "...")
	return filepath.Abs(root)
}
