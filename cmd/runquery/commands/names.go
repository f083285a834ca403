package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/report"
	"github.com/teranos/runquery/sym"
)

func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names <file|glob>...",
		Short: sym.Names + " List scenario names under a naming strategy",
		Long: `List the display name of every pickle in arrival order.

Long names join the feature, rule, scenario, examples and example row;
short names keep only the innermost element.`,
		Example: `  runquery names run.ndjson
  runquery names run.ndjson --strategy short --example-name pickle
  runquery names run.ndjson --feature-name exclude --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNames,
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml, toml")
	addNamingFlags(cmd)
	addStoreFlags(cmd)
	return cmd
}

// nameList wraps names for formats that need a top-level table.
type nameList struct {
	Names []report.Name `json:"names" yaml:"names" toml:"names"`
}

func runNames(cmd *cobra.Command, args []string) error {
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	strategy, err := strategyFor(cmd, configFrom(cmd))
	if err != nil {
		return err
	}
	q, err := loadRun(cmd, args)
	if err != nil {
		return err
	}

	names := report.Names(q, strategy)
	if format == display.FormatText {
		return report.WriteNames(cmd.OutOrStdout(), names)
	}
	return display.Write(cmd.OutOrStdout(), nameList{Names: names}, format)
}
