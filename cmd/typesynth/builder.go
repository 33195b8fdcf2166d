package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"typesynth/internal/config"
	"typesynth/internal/ctxlog"
	"typesynth/internal/driver"
)

var (
	builderTypes  []string
	builderConfig string
	builderDryRun bool
	builderJobs   int
	builderTags   []string

	// Overrides of the builder section of the config file.
	builderWrappers   []string
	builderSuffix     string
	builderPrefix     string
	builderFileSuffix string
	builderComments   bool
)

func init() {
	builderCmd.Flags().StringSliceVar(&builderTypes, "type", nil, "struct types to generate builders for, in addition to //typesynth:builder")
	builderCmd.Flags().StringVar(&builderConfig, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	builderCmd.Flags().BoolVar(&builderDryRun, "dry-run", false, "print generated files instead of writing them")
	builderCmd.Flags().IntVar(&builderJobs, "jobs", 0, "packages processed in parallel (0: GOMAXPROCS)")
	builderCmd.Flags().StringSliceVar(&builderTags, "tags", nil, "build tags to apply when loading packages")

	builderCmd.Flags().StringSliceVar(&builderWrappers, "optional-wrapper", nil, "override builder.optionalWrappers")
	builderCmd.Flags().StringVar(&builderSuffix, "builder-suffix", "", "override builder.builderSuffix")
	builderCmd.Flags().StringVar(&builderPrefix, "constructor-prefix", "", "override builder.constructorPrefix")
	builderCmd.Flags().StringVar(&builderFileSuffix, "file-suffix", "", "override builder.fileSuffix")
	builderCmd.Flags().BoolVar(&builderComments, "comments", true, "override builder.generateComments")
}

// applyOverrides copies the flags set on the command line over cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	b := &cfg.Builder

	if flags.Changed("optional-wrapper") {
		b.OptionalWrappers = builderWrappers
	}

	if flags.Changed("builder-suffix") {
		b.BuilderSuffix = builderSuffix
	}

	if flags.Changed("constructor-prefix") {
		b.ConstructorPrefix = builderPrefix
	}

	if flags.Changed("file-suffix") {
		b.FileSuffix = builderFileSuffix
	}

	if flags.Changed("comments") {
		comments := builderComments
		b.GenerateComments = &comments
	}

	return cfg.Validate()
}

var builderCmd = &cobra.Command{
	Use:   "builder [packages]",
	Short: "Generate builders for struct types",
	Long: `Generate a builder for every struct type documented with //typesynth:builder
or named with --type. The builder is written next to the type as
<type>_builder.go.

Fields tagged builder:"each=Name" get a Name method appending one item.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := ctxlog.FromContext(ctx)

		cfg, err := config.Load(builderConfig)
		if err != nil {
			return err
		}

		if err := applyOverrides(cmd, cfg); err != nil {
			return err
		}

		res, err := driver.RunBuilder(ctx, driver.BuilderOptions{
			Patterns: args,
			Types:    builderTypes,
			Tags:     builderTags,
			Config:   cfg,
			DryRun:   builderDryRun,
			Jobs:     builderJobs,
		})
		if err != nil {
			return err
		}

		for _, pkg := range res.Packages {
			if builderDryRun {
				for _, f := range pkg.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n%s\n", f.Filename, f.Content)
				}
			}

			for _, w := range pkg.Written {
				if w.Changed {
					log.Info("wrote builder", slog.String("file", w.Path))
				}
			}
		}

		diags := res.Diagnostics()

		colored, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}

		printDiagnostics(cmd.ErrOrStderr(), diags.All(), colored)

		if diags.HasErrors() {
			return errFindings
		}

		return nil
	},
}
