package main

import (
	"os"

	"github.com/spf13/cobra"

	"typesynth/internal/driver"
)

var (
	sortedJobs int
	sortedTags []string
)

func init() {
	sortedCmd.Flags().IntVar(&sortedJobs, "jobs", 0, "packages processed in parallel (0: GOMAXPROCS)")
	sortedCmd.Flags().StringSliceVar(&sortedTags, "tags", nil, "build tags to apply when loading packages")
}

var sortedCmd = &cobra.Command{
	Use:   "sorted [packages]",
	Short: "Check that //typesynth:sorted const blocks are in case-insensitive order",
	RunE: func(cmd *cobra.Command, args []string) error {
		findings, err := driver.RunSorted(cmd.Context(), driver.SortedOptions{
			Patterns: args,
			Tags:     sortedTags,
			Jobs:     sortedJobs,
		})
		if err != nil {
			return err
		}

		colored, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}

		printDiagnostics(cmd.ErrOrStderr(), findings, colored)

		if len(findings) > 0 {
			return errFindings
		}

		return nil
	},
}
