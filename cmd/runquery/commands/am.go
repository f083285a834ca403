package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/runquery/am"
	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/sym"
)

func newAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: sym.AM + " Manage runquery configuration",
		Long: sym.AM + ` am - Manage runquery configuration ("I am")

Display and manage runquery configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (RUNQUERY_* prefix)
3. Project config (nearest am.toml or runquery.toml, searching up)
4. User config (~/.runquery/am.toml)
5. System config (/etc/runquery/config.toml)
6. Default values

Examples:
  runquery am show                  # Show current configuration
  runquery am show --format json    # Show configuration in JSON format
  runquery am get naming.strategy   # Get specific config value
  runquery am where                 # Show where each value comes from
  runquery am init                  # Write a starter am.toml here`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current runquery configuration from all sources",
		RunE:  runAmShow,
	}
	show.Flags().StringP("format", "f", "toml", "Output format: toml, json, yaml")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., naming.strategy, watch.refresh_per_second)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAmGet,
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		RunE:  runAmValidate,
	}

	where := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade and the source of every setting.

Settings are listed by key with the file or environment variable that
set them. Keys nobody set show their built-in default.`,
		RunE: runAmWhere,
	}

	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter am.toml",
		Long:  "Write the default configuration to am.toml in dir (default: current directory).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAmInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing am.toml (a backup is kept)")

	cmd.AddCommand(show, get, validate, where, initCmd)
	return cmd
}

func runAmShow(cmd *cobra.Command, args []string) error {
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := configFrom(cmd)

	switch format {
	case display.FormatTOML, display.FormatText:
		data, err := am.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# runquery configuration\n%s", data)
		return nil
	default:
		return display.Write(cmd.OutOrStdout(), cfg, format)
	}
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	v := am.GetViper()
	if !v.IsSet(key) {
		return errors.WithHint(
			errors.NewNotFoundError("configuration key %q not found", key),
			"run 'runquery am where' to list every key")
	}
	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	// The root command already refused an invalid configuration; validate
	// again so overrides applied after loading are covered too.
	if err := configFrom(cmd).Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	settings, err := am.Introspect()
	if err != nil {
		return err
	}

	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	if format != display.FormatText {
		return display.Write(cmd.OutOrStdout(), settings, format)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/runquery/config.toml")
	fmt.Fprintf(out, "  3. [USER]     %s/am.toml\n", am.UserConfigDir())
	fmt.Fprintln(out, "  4. [PROJECT]  ./am.toml or ./runquery.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      RUNQUERY_* environment variables")
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	table, err := display.Table([]string{"Key", "Value", "Source", "From"}, rows)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}
	force, _ := cmd.Flags().GetBool("force")
	path, err := am.WriteStarter(dir, force)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
