package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/errors"
)

// Tally is the one-line outcome count, e.g. "3 scenarios (2 passed, 1 failed)".
func (s Summary) Tally() string {
	var parts []string
	for _, bucket := range s.Statuses {
		if bucket.Count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", bucket.Count, strings.ToLower(string(bucket.Status))))
		}
	}
	total := s.Statuses.Total()
	noun := "scenarios"
	if total == 1 {
		noun = "scenario"
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d %s (%s)", total, noun, strings.Join(parts, ", "))
}

// WriteText renders the summary as one table per feature followed by the
// tally.
func (s Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	if s.Implementation != "" {
		b.WriteString(pterm.FgGray.Sprintf("%s\n\n", s.Implementation))
	}

	for _, f := range s.Features {
		b.WriteString(pterm.Bold.Sprintln(f.Name))
		rows := make([][]string, 0, len(f.Scenarios))
		for _, sc := range f.Scenarios {
			duration := "running"
			if sc.Finished {
				duration = Duration(sc.DurationMS)
			}
			rows = append(rows, []string{sc.Name, display.StatusStyle(sc.Status), duration, sc.Location})
		}
		table, err := display.Table([]string{"Scenario", "Status", "Duration", "Location"}, rows)
		if err != nil {
			return err
		}
		b.WriteString(table)
		b.WriteString("\n")
	}

	b.WriteString(s.Tally())
	if s.RunFinished {
		fmt.Fprintf(&b, "\nfinished in %s", Duration(s.DurationMS))
		if !s.Success {
			b.WriteString(pterm.FgRed.Sprint(" (failed)"))
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "failed to write summary")
}

// WriteNames renders names as a table.
func WriteNames(w io.Writer, names []Name) error {
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n.Name, n.Location})
	}
	table, err := display.Table([]string{"Name", "Location"}, rows)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, table+"\n")
	return errors.Wrap(err, "failed to write names")
}
