package display

import (
	"github.com/pterm/pterm"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/sym"
)

// Table renders rows under a header row.
func Table(header []string, rows [][]string) (string, error) {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, "failed to render table")
	}
	return out, nil
}

// StatusStyle prefixes a test step status name with its glyph and colors
// it.
func StatusStyle(status string) string {
	label := sym.ForStatus(messages.TestStepResultStatus(status)) + " " + status
	switch status {
	case "PASSED":
		return pterm.FgGreen.Sprint(label)
	case "FAILED":
		return pterm.FgRed.Sprint(label)
	case "AMBIGUOUS":
		return pterm.FgLightRed.Sprint(label)
	case "UNDEFINED", "PENDING":
		return pterm.FgYellow.Sprint(label)
	case "SKIPPED":
		return pterm.FgCyan.Sprint(label)
	default:
		return pterm.FgGray.Sprint(label)
	}
}
