package testutils

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/tools/txtar"
)

//go:embed testdata/*.txtar
var goldenFS embed.FS

// wantFile names the archive member holding the expected diagnostic stream
const wantFile = "want"

// Golden is a set of C files and the diagnostic stream expected when they are
// analyzed with the default configuration
type Golden struct {
	Name    string
	Comment string
	Sources []txtar.File
	Want    string
}

// Goldens loads every archive under testdata, sorted by name
func Goldens() ([]*Golden, error) {
	names, err := goldenFS.ReadDir("testdata")
	if err != nil {
		return nil, err
	}
	var goldens []*Golden
	for _, entry := range names {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txtar" {
			continue
		}
		data, err := goldenFS.ReadFile(path.Join("testdata", entry.Name()))
		if err != nil {
			return nil, err
		}
		g, err := ParseGolden(strings.TrimSuffix(entry.Name(), ".txtar"), data)
		if err != nil {
			return nil, err
		}
		goldens = append(goldens, g)
	}
	sort.Slice(goldens, func(i, j int) bool { return goldens[i].Name < goldens[j].Name })
	return goldens, nil
}

// ParseGolden splits a txtar archive into its sources and expected output
func ParseGolden(name string, data []byte) (*Golden, error) {
	archive := txtar.Parse(data)
	g := &Golden{Name: name, Comment: strings.TrimSpace(string(archive.Comment))}
	found := false
	for _, f := range archive.Files {
		if f.Name == wantFile {
			g.Want = string(f.Data)
			found = true
			continue
		}
		g.Sources = append(g.Sources, f)
	}
	if !found {
		return nil, fmt.Errorf("golden %s: no %q section", name, wantFile)
	}
	if len(g.Sources) == 0 {
		return nil, fmt.Errorf("golden %s: no source files", name)
	}
	return g, nil
}

// Source writes the golden's C files into a new TestSource
func (g *Golden) Source() *TestSource {
	src := NewTestSource()
	if src == nil {
		return nil
	}
	for _, f := range g.Sources {
		src.AddFile(f.Name, string(f.Data))
	}
	return src
}
