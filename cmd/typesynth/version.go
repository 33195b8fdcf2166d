package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version can be set at build time with -ldflags "-X main.Version=...".
var Version = ""

func version() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the typesynth version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "typesynth", version())
	},
}
