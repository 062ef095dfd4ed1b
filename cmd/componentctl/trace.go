package main

import (
	"github.com/spf13/cobra"

	component "github.com/goliatone/go-component"
)

func traceCmd(files *[]string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "trace NAME KEY",
		Short: "Show which definitions declare an option key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBuilder(cmd.Context(), *files)
			if err != nil {
				return err
			}
			def, err := b.Build(args[0])
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, component.TraceOption(nil, def, args[1]))
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format (yaml|json)")
	return cmd
}
