package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	component "github.com/goliatone/go-component"
)

func resolveCmd(files *[]string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve NAME",
		Short: "Print the resolved options of a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBuilder(cmd.Context(), *files)
			if err != nil {
				return err
			}
			def, err := b.Build(args[0])
			if err != nil {
				return err
			}
			resolved := component.NewResolver().Resolve(def)
			return writeFormatted(cmd.OutOrStdout(), format, component.Describe(resolved))
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format (yaml|json)")
	return cmd
}

func writeFormatted(w io.Writer, format string, value any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
