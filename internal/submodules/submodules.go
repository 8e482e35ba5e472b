// Package submodules reads the submodules registered in a repository's
// .gitmodules file.
package submodules

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gopasspw/gitconfig"

	"github.com/everypolitician/commons-tools/pkg/errors"
)

// FileName is the submodule configuration file at a repository root.
const FileName = ".gitmodules"

// Submodule is one [submodule "name"] section.
type Submodule struct {
	Name string
	Path string
	URL  string
}

// Set is the submodules of a repository, keyed by path.
type Set map[string]Submodule

// Load reads the .gitmodules file in dir. A repository without one has no
// submodules.
func Load(dir string) (Set, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Set{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	// Only the preset scope is populated, so system and user git
	// configuration never leak into the result.
	cfg := &gitconfig.Configs{Preset: gitconfig.ParseConfig(f)}

	set := Set{}
	for _, name := range cfg.ListSubsections("submodule") {
		sm := Submodule{
			Name: name,
			Path: cfg.Get("submodule." + name + ".path"),
			URL:  cfg.Get("submodule." + name + ".url"),
		}
		if sm.Path == "" {
			sm.Path = name
		}
		set[sm.Path] = sm
	}
	return set, nil
}

// Has reports whether a submodule is registered at path.
func (s Set) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths returns the registered paths, sorted.
func (s Set) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
