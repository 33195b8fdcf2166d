package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"typesynth/internal/analyze"
	"typesynth/internal/config"
	"typesynth/internal/ctxlog"
	"typesynth/internal/diagnostic"
	"typesynth/internal/gen"
	"typesynth/internal/plan"
)

// ErrTypesNeedOnePackage is returned when explicit type names are combined
// with a pattern matching several packages.
var ErrTypesNeedOnePackage = errors.New("--type requires exactly one package")

// BuilderOptions configures a builder run.
type BuilderOptions struct {
	// Patterns are go/packages patterns; empty means ".".
	Patterns []string
	// Types selects targets by name in addition to the builder directive.
	Types []string
	// Dir is the directory patterns are resolved in.
	Dir string
	// Tags are extra build tags used when loading.
	Tags []string
	// Config supplies naming and emitter settings; nil means config.Default().
	Config *config.Config
	// DryRun generates without writing.
	DryRun bool
	// Jobs bounds the number of packages processed at once (<= 0: GOMAXPROCS).
	Jobs int
}

// PackageResult is the outcome for one package.
type PackageResult struct {
	Path        string
	Dir         string
	Files       []gen.GeneratedFile
	Written     []gen.WriteResult
	Diagnostics diagnostic.Diagnostics
}

// BuilderResult is the outcome of a builder run, one entry per package in
// load order.
type BuilderResult struct {
	Packages []PackageResult
}

// Diagnostics merges the diagnostics of every package.
func (r *BuilderResult) Diagnostics() diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	for i := range r.Packages {
		all.Merge(r.Packages[i].Diagnostics)
	}

	return all
}

// RunBuilder generates builders for every target of the matched packages.
//
// Authoring, generation and write errors are reported as diagnostics and
// only stop the target they belong to. The returned error is for failures of
// the run itself: loading and cancellation.
func RunBuilder(ctx context.Context, opts BuilderOptions) (*BuilderResult, error) {
	log := ctxlog.FromContext(ctx)

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	loader := &analyze.Loader{Dir: opts.Dir, Tags: opts.Tags}

	pkgs, err := loader.Load(ctx, patternsOrDot(opts.Patterns)...)
	if err != nil {
		return nil, err
	}

	if len(opts.Types) > 0 && len(pkgs) != 1 {
		return nil, fmt.Errorf("%w, got %d", ErrTypesNeedOnePackage, len(pkgs))
	}

	results := make([]PackageResult, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs(opts.Jobs, len(pkgs)))

	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = buildPackage(gctx, pkg, cfg, opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug("builder run finished", slog.Int("packages", len(pkgs)))

	return &BuilderResult{Packages: results}, nil
}

// buildPackage turns every failure into a diagnostic of the target it
// belongs to.
func buildPackage(ctx context.Context, pkg *analyze.Package, cfg *config.Config, opts BuilderOptions) PackageResult {
	log := ctxlog.FromContext(ctx).With(slog.String("pkg", pkg.Path))

	res := PackageResult{Path: pkg.Path, Dir: pkg.Dir}

	targets, diags := analyze.Extract(pkg, analyze.Selector{
		Names:     opts.Types,
		Directive: analyze.BuilderDirective,
	})
	res.Diagnostics.Merge(diags)

	var plans []*plan.BuilderPlan

	for i := range targets {
		p, diags := plan.Build(&targets[i], cfg.PlanOptions())
		res.Diagnostics.Merge(diags)

		if p == nil {
			log.Debug("skipping target", slog.String("type", targets[i].Name))

			continue
		}

		plans = append(plans, p)
	}

	if len(plans) == 0 {
		return res
	}

	genCfg := cfg.GeneratorConfig()
	if !opts.DryRun {
		genCfg.DebugDir = pkg.Dir
	}

	generator := gen.NewGenerator(genCfg)

	// Targets are generated and written one by one so that a failing target
	// leaves its siblings untouched.
	var generated []*plan.BuilderPlan

	for _, p := range plans {
		file, err := generator.GenerateBuilder(p)
		if err != nil {
			res.Diagnostics.AddError(diagnostic.CodeGenerateFailed,
				fmt.Sprintf("generating %s: %v", p.BuilderName, err), p.Pos, p.TypeName, "")

			continue
		}

		res.Files = append(res.Files, *file)
		generated = append(generated, p)
	}

	if opts.DryRun || len(res.Files) == 0 {
		return res
	}

	results, err := gen.WriteFiles(res.Files, pkg.Dir)
	if len(results) == 0 && err != nil {
		for _, p := range generated {
			res.Diagnostics.AddError(diagnostic.CodeWriteFailed, err.Error(), p.Pos, p.TypeName, "")
		}

		return res
	}

	for i, w := range results {
		p := generated[i]

		switch {
		case errors.Is(w.Err, gen.ErrNotGenerated):
			res.Diagnostics.AddError(diagnostic.CodeOutputConflict,
				fmt.Sprintf("%s exists and was not generated by typesynth", filepath.Base(w.Path)),
				p.Pos, p.TypeName, "")
		case w.Err != nil:
			res.Diagnostics.AddError(diagnostic.CodeWriteFailed, w.Err.Error(), p.Pos, p.TypeName, "")
		default:
			res.Written = append(res.Written, w)
			log.Debug("wrote builder", slog.String("file", w.Path), slog.Bool("changed", w.Changed))
		}
	}

	return res
}

func patternsOrDot(patterns []string) []string {
	if len(patterns) == 0 {
		return []string{"."}
	}

	return patterns
}

func jobs(n, work int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	return max(1, min(n, work))
}
