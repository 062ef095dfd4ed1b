package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var files []string

	root := &cobra.Command{
		Use:   "componentctl",
		Short: "Inspect and initialize component definitions",
		Long: `componentctl loads component specs from YAML files and builds them
into definitions extended from a shared base.

Use it to list specs, print resolved options, trace where an option
value comes from, or initialize and mount a component tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVarP(&files, "file", "f", nil, "YAML spec file (repeatable)")

	root.AddCommand(
		listCmd(&files),
		resolveCmd(&files),
		traceCmd(&files),
		initCmd(&files),
		versionCmd(),
	)
	return root
}
