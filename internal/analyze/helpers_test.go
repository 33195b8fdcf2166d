package analyze

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

// parsePackage builds a Package from in-memory sources named a.go, b.go, ...
func parsePackage(t *testing.T, sources ...string) *Package {
	t.Helper()

	fset := token.NewFileSet()
	pkg := &Package{
		Path:        "example.com/cmd",
		Name:        "cmd",
		Fset:        fset,
		ImportNames: map[string]string{"gopkg.in/yaml.v3": "yaml"},
	}

	for i, src := range sources {
		file, err := parser.ParseFile(fset, string(rune('a'+i))+".go", src, parser.ParseComments)
		require.NoError(t, err)

		pkg.Files = append(pkg.Files, file)
	}

	return pkg
}

func fieldNames(fields []FieldDescriptor) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}

	return out
}
