package driver

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"typesynth/internal/analyze"
	"typesynth/internal/ctxlog"
	"typesynth/internal/diagnostic"
	"typesynth/internal/sorted"
)

// SortedOptions configures an ordering check run.
type SortedOptions struct {
	Patterns []string
	Dir      string
	Tags     []string
	Jobs     int
}

// RunSorted checks every //typesynth:sorted declaration of the matched
// packages and returns the findings ordered by position.
func RunSorted(ctx context.Context, opts SortedOptions) ([]diagnostic.Diagnostic, error) {
	loader := &analyze.Loader{Dir: opts.Dir, Tags: opts.Tags}

	pkgs, err := loader.Load(ctx, patternsOrDot(opts.Patterns)...)
	if err != nil {
		return nil, err
	}

	results := make([]diagnostic.Diagnostics, len(pkgs))

	var g errgroup.Group
	g.SetLimit(jobs(opts.Jobs, len(pkgs)))

	for i, pkg := range pkgs {
		g.Go(func() error {
			results[i] = sorted.Scan(pkg.Fset, pkg.Files)

			return nil
		})
	}

	_ = g.Wait()

	var all diagnostic.Diagnostics
	for _, d := range results {
		all.Merge(d)
	}

	ctxlog.FromContext(ctx).Debug("ordering check finished",
		slog.Int("packages", len(pkgs)), slog.Int("findings", len(all.Errors)))

	return all.All(), nil
}
