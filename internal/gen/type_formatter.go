package gen

import (
	"sort"

	"typesynth/internal/analyze"
	"typesynth/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file, keyed by local name.
type importSet struct {
	byName map[string]importSpec
}

func newImportSet() *importSet {
	return &importSet{byName: make(map[string]importSpec)}
}

// addFieldImport records an import used by a field type under the name the
// declaring file uses for it.
func (s *importSet) addFieldImport(imp analyze.ImportInfo) {
	spec := importSpec{Path: imp.Path}
	if imp.Explicit {
		spec.Alias = imp.Name
	}

	s.byName[imp.Name] = spec
}

// addRuntime adds a package referenced by generated code and returns the
// local name to use for it. When a field import already owns the natural name
// for another path, the runtime package is imported under an alias.
func (s *importSet) addRuntime(path string) string {
	name := common.PkgAlias(path)

	for alias := name; ; alias = "typesynth" + alias {
		spec, taken := s.byName[alias]
		if taken && spec.Path != path {
			continue
		}

		if !taken {
			spec = importSpec{Path: path}
			if alias != name {
				spec.Alias = alias
			}

			s.byName[alias] = spec
		}

		return alias
	}
}

// sorted returns the imports sorted by path.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.byName))
	for _, spec := range s.byName {
		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
