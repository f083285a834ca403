package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show runquery version information",
		Long:  `Display version, build time, commit hash, and platform information for the runquery binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()

			format, err := display.FormatFromCommand(cmd)
			if err != nil {
				return err
			}
			if format != display.FormatText {
				return display.Write(cmd.OutOrStdout(), info, format)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml, toml")
	return cmd
}
