// Package commands implements the runquery command line.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/teranos/runquery/am"
	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/logger"
)

// NewRootCmd builds the runquery command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "runquery",
		Short: "Query test run message streams",
		Long: `runquery - Query test run message streams.

Reads newline-delimited test run messages (optionally gzip, zstd or lz4
compressed), indexes them and answers questions about the run: which
scenarios passed, what each attempt reported and how long it took.

Available commands:
  summary - Per-feature results and totals for one or more message files
  names   - Display names of every scenario under a naming strategy
  watch   - Follow a message file while the run is in progress
  merge   - Join (and re-compress) message files into one stream
  am      - Manage runquery configuration ("I am")
  version - Show build information

Examples:
  runquery summary reports/run.ndjson
  runquery summary 'reports/**/*.ndjson.zst' --format yaml
  runquery names run.ndjson --strategy short --example-name pickle
  runquery watch run.ndjson
  runquery merge 'shards/*.ndjson' -o run.ndjson.zst`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			jsonLogs, _ := cmd.Flags().GetBool("log-json")
			if err := logger.Initialize(jsonLogs || cfg.Log.JSON); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			verbosity, _ := cmd.Flags().GetCount("verbose")
			logger.SetVerbosity(max(verbosity, cfg.Log.Verbosity))
			display.ConfigureStyling()

			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().Bool("json", false, "Shortcut for --format json")
	root.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	root.PersistentFlags().String("config", "", "Read configuration from this file only")

	root.AddCommand(newSummaryCmd())
	root.AddCommand(newNamesCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newAmCmd())
	root.AddCommand(newVersionCmd())
	return root
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *am.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration loaded by the root command.
func configFrom(cmd *cobra.Command) *am.Config {
	if cmd.Context() != nil {
		if cfg, ok := cmd.Context().Value(configKey{}).(*am.Config); ok {
			return cfg
		}
	}
	return am.Default()
}

func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return am.LoadFromFile(path)
	}
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}
