// Package lineage reconstructs the ancestor chain of every addressable node
// in a parsed document and folds those chains into arbitrary values.
package lineage

import "github.com/teranos/runquery/messages"

// Lineage is the ancestor chain of one document node or pickle. Values are
// never mutated after construction; extending a lineage copies it.
//
// Presence is monotonic: an example row implies examples, scenario, feature
// and document. Background is only set outside a rule and RuleBackground
// only inside one.
type Lineage struct {
	document        *messages.GherkinDocument
	feature         *messages.Feature
	background      *messages.Background
	rule            *messages.Rule
	ruleBackground  *messages.Background
	scenario        *messages.Scenario
	examples        *messages.Examples
	examplesIndex   int
	exampleRow      *messages.TableRow
	exampleRowIndex int
}

// Of returns the root lineage of a document.
func Of(document *messages.GherkinDocument) *Lineage {
	return &Lineage{document: document}
}

func (l *Lineage) withFeature(feature *messages.Feature, background *messages.Background) *Lineage {
	next := *l
	next.feature = feature
	next.background = background
	return &next
}

func (l *Lineage) withRule(rule *messages.Rule, background *messages.Background) *Lineage {
	next := *l
	next.rule = rule
	next.background = nil
	next.ruleBackground = background
	return &next
}

func (l *Lineage) withScenario(scenario *messages.Scenario) *Lineage {
	next := *l
	next.scenario = scenario
	return &next
}

func (l *Lineage) withExamples(examples *messages.Examples, index int) *Lineage {
	next := *l
	next.examples = examples
	next.examplesIndex = index
	return &next
}

func (l *Lineage) withExampleRow(row *messages.TableRow, index int) *Lineage {
	next := *l
	next.exampleRow = row
	next.exampleRowIndex = index
	return &next
}

func (l *Lineage) Document() *messages.GherkinDocument { return l.document }

func (l *Lineage) Feature() *messages.Feature { return l.feature }

// Background is the feature-level background, for nodes outside a rule.
func (l *Lineage) Background() *messages.Background { return l.background }

func (l *Lineage) Rule() *messages.Rule { return l.rule }

// RuleBackground is the enclosing rule's background.
func (l *Lineage) RuleBackground() *messages.Background { return l.ruleBackground }

func (l *Lineage) Scenario() *messages.Scenario { return l.scenario }

func (l *Lineage) Examples() *messages.Examples { return l.examples }

// ExamplesIndex is the 0-based position of the examples block within its
// scenario.
func (l *Lineage) ExamplesIndex() (int, bool) {
	return l.examplesIndex, l.examples != nil
}

func (l *Lineage) ExampleRow() *messages.TableRow { return l.exampleRow }

// ExampleRowIndex is the 0-based position of the row within the examples
// table body.
func (l *Lineage) ExampleRowIndex() (int, bool) {
	return l.exampleRowIndex, l.exampleRow != nil
}
