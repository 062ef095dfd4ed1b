package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func listCmd(files *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loaded specs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context(), *files)
			if err != nil {
				return err
			}
			specs, err := c.Specs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, spec := range specs {
				line := spec.Name
				if spec.Extends != "" {
					line += " extends " + spec.Extends
				}
				if len(spec.Mixins) > 0 {
					line += " mixins " + strings.Join(spec.Mixins, ",")
				}
				if len(spec.Components) > 0 {
					line += " components " + strings.Join(spec.Components, ",")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
