package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/exemplo/appserver/internal/version"
)

func newVersionCmd() *cobra.Command {
	var short, asYAML bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build := version.Get()
			out := cmd.OutOrStdout()

			switch {
			case asYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(build)
			case short:
				_, err := fmt.Fprintln(out, build.Short())
				return err
			default:
				_, err := fmt.Fprintln(out, build.String())
				return err
			}
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version and revision")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print build details as YAML")
	cmd.MarkFlagsMutuallyExclusive("short", "yaml")

	return cmd
}
