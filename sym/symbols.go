// Package sym defines the glyphs runquery prints next to commands and
// test step statuses. They are stable across commands and documentation.
package sym

import "github.com/teranos/runquery/messages"

// Command glyphs.
const (
	AM      = "≡" // am: configuration and system settings
	Summary = "Σ" // summary: per-feature results of a run
	Names   = "⌗" // names: display names under a naming strategy
	Watch   = "꩜" // watch: live summary of a growing message file
	Merge   = "⊔" // merge: join message files into one stream
)

// Status glyphs, one per test step result status.
const (
	Unknown   = "·"
	Passed    = "✓"
	Skipped   = "↷"
	Pending   = "…"
	Undefined = "?"
	Ambiguous = "⁇"
	Failed    = "✗"
)

// entry binds a status to its glyph and label.
type entry struct {
	status messages.TestStepResultStatus
	glyph  string
	label  string
}

// registry lists statuses from least to most severe.
var registry = []entry{
	{messages.StatusUnknown, Unknown, "unknown"},
	{messages.StatusPassed, Passed, "passed"},
	{messages.StatusSkipped, Skipped, "skipped"},
	{messages.StatusPending, Pending, "pending"},
	{messages.StatusUndefined, Undefined, "undefined"},
	{messages.StatusAmbiguous, Ambiguous, "ambiguous"},
	{messages.StatusFailed, Failed, "failed"},
}

var (
	glyphToStatus map[string]messages.TestStepResultStatus
	statusToGlyph map[messages.TestStepResultStatus]string
)

func init() {
	glyphToStatus = make(map[string]messages.TestStepResultStatus, len(registry))
	statusToGlyph = make(map[messages.TestStepResultStatus]string, len(registry))
	for _, e := range registry {
		glyphToStatus[e.glyph] = e.status
		statusToGlyph[e.status] = e.glyph
	}
}

// ForStatus returns the glyph of a status. Unrecognised statuses get the
// unknown glyph.
func ForStatus(s messages.TestStepResultStatus) string {
	if g, ok := statusToGlyph[s]; ok {
		return g
	}
	return Unknown
}

// FromGlyph returns the status a glyph stands for.
func FromGlyph(glyph string) (messages.TestStepResultStatus, bool) {
	s, ok := glyphToStatus[glyph]
	return s, ok
}

// CommandToSymbol maps command names to their glyphs.
var CommandToSymbol = map[string]string{
	"am":      AM,
	"summary": Summary,
	"names":   Names,
	"watch":   Watch,
	"merge":   Merge,
}

// SymbolToCommand maps glyphs back to command names.
var SymbolToCommand = map[string]string{
	AM:      "am",
	Summary: "summary",
	Names:   "names",
	Watch:   "watch",
	Merge:   "merge",
}
