// Command typesynth generates builders for Go struct types and checks the
// declared order of enumerated constants.
//
//	typesynth builder [--type T,...] [packages]
//	typesynth sorted [packages]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"typesynth/internal/ctxlog"
)

// errFindings makes the process exit 1 after diagnostics were printed.
var errFindings = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:           "typesynth",
	Short:         "Builder generator and ordering checker for Go types",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		logger := ctxlog.New(cmd.ErrOrStderr(), verbose)
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

		return nil
	},
}

func init() {
	rootCmd.Version = version()

	rootCmd.AddCommand(builderCmd)
	rootCmd.AddCommand(sortedCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "log debug output")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "typesynth:", err)
		}

		os.Exit(1)
	}
}

// useColor resolves the --color flag against the output file.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}

	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (want auto, on or off)", mode)
	}
}
