package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"typesynth/internal/ctxlog"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedImports |
	packages.NeedTypes

// Loader loads Go packages for schema extraction.
type Loader struct {
	// Dir is the working directory for pattern resolution ("" means current).
	Dir string
	// Tags are extra build tags.
	Tags []string
}

// Load loads the packages matched by patterns.
//
// Syntax and list errors fail the load. Type errors are tolerated: a package
// whose previously generated builders are stale must still be loadable so
// that they can be regenerated.
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	log := ctxlog.FromContext(ctx)

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     l.Dir,
	}
	if len(l.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags", strings.Join(l.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				log.Debug("ignoring type error", slog.String("pkg", pkg.PkgPath), slog.String("err", e.Msg))

				continue
			}

			errs = append(errs, e)
		}

		out = append(out, newPackage(pkg))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	log.Debug("loaded packages", slog.Int("count", len(out)))

	return out, nil
}

func newPackage(pkg *packages.Package) *Package {
	p := &Package{
		Path:        pkg.PkgPath,
		Name:        pkg.Name,
		Fset:        pkg.Fset,
		Files:       pkg.Syntax,
		ImportNames: make(map[string]string),
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	if pkg.Types != nil {
		for _, imp := range pkg.Types.Imports() {
			p.ImportNames[imp.Path()] = imp.Name()
		}
	}

	return p
}
