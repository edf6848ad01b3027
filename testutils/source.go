package testutils

import (
	"os"
	"path/filepath"
	"sort"
)

// TestSource is a temporary directory of C files for testing purposes
type TestSource struct {
	Path  string
	Files map[string]string
}

// NewTestSource will create a new and empty source directory. Must call
// Close() to cleanup auxiliary files
func NewTestSource() *TestSource {
	workingDir, err := os.MkdirTemp("", "memcheck_test")
	if err != nil {
		return nil
	}
	return &TestSource{
		Path:  workingDir,
		Files: make(map[string]string),
	}
}

// AddFile inserts the filename and contents into the source directory
func (s *TestSource) AddFile(filename, content string) {
	s.Files[filepath.Join(s.Path, filename)] = content
}

// Write persists the files to disk and returns their paths, sorted
func (s *TestSource) Write() ([]string, error) {
	paths := make([]string, 0, len(s.Files))
	for filename, content := range s.Files {
		if err := os.MkdirAll(filepath.Dir(filename), 0o750); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
			return nil, err
		}
		paths = append(paths, filename)
	}
	sort.Strings(paths)
	return paths, nil
}

// Close will delete the source directory and all files
func (s *TestSource) Close() {
	_ = os.RemoveAll(s.Path)
}
