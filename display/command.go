package display

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// FormatFromCommand reads --format, honouring the global --json shortcut.
// Commands without either flag render text.
func FormatFromCommand(cmd *cobra.Command) (Format, error) {
	if cmd == nil {
		return FormatText, nil
	}
	if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil && jsonFlag {
		return FormatJSON, nil
	}
	flag := cmd.Flags().Lookup("format")
	if flag == nil {
		return FormatText, nil
	}
	return ParseFormat(flag.Value.String())
}

// ConfigureStyling disables colors when stdout is not a terminal or
// NO_COLOR is set.
func ConfigureStyling() {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || !IsTerminal(os.Stdout) {
		pterm.DisableStyling()
	}
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
