package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/report"
	"github.com/teranos/runquery/sym"
)

// ErrRunFailed is returned by summary --check when the run did not succeed.
var ErrRunFailed = errors.New("test run failed")

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file|glob>...",
		Short: sym.Summary + " Summarize the results of a test run",
		Long: `Summarize the results of a test run.

Every scenario is listed under its feature with the most severe status of
its final attempt. Attempts that were retried are left out. Files are read
in order, so a run split across several files is summarized as one.

Use "-" to read from standard input.`,
		Example: `  runquery summary run.ndjson
  runquery summary 'reports/**/*.ndjson.gz' --format json
  runquery summary run.ndjson --check   # exit non-zero unless the run succeeded`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSummary,
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml, toml")
	cmd.Flags().Bool("check", false, "Exit with an error when the run failed")
	addNamingFlags(cmd)
	addStoreFlags(cmd)
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
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

	summary := report.Build(q, strategy)
	if format == display.FormatText {
		err = summary.WriteText(cmd.OutOrStdout())
	} else {
		err = display.Write(cmd.OutOrStdout(), summary, format)
	}
	if err != nil {
		return err
	}

	if check, _ := cmd.Flags().GetBool("check"); check && summary.RunFinished && !summary.Success {
		return ErrRunFailed
	}
	return nil
}
