package lineage

import "github.com/teranos/runquery/messages"

// Collector accumulates the visits of one reduction and produces its
// result. A collector opts into visits by implementing any of the Visitor
// interfaces below; kinds it does not implement are skipped.
type Collector[T any] interface {
	Finish() T
}

type DocumentVisitor interface {
	VisitDocument(document *messages.GherkinDocument)
}

type FeatureVisitor interface {
	VisitFeature(feature *messages.Feature)
}

type BackgroundVisitor interface {
	VisitBackground(background *messages.Background)
}

type RuleVisitor interface {
	VisitRule(rule *messages.Rule)
}

type RuleBackgroundVisitor interface {
	VisitRuleBackground(background *messages.Background)
}

type ScenarioVisitor interface {
	VisitScenario(scenario *messages.Scenario)
}

type ExamplesVisitor interface {
	VisitExamples(examples *messages.Examples, index int)
}

type ExampleRowVisitor interface {
	VisitExampleRow(row *messages.TableRow, index int)
}

type PickleVisitor interface {
	VisitPickle(pickle *messages.Pickle)
}

// Satisfier is implemented by collectors that can tell when further visits
// would not change their result. It is only consulted by reducers built
// with ShortCircuit.
type Satisfier interface {
	Satisfied() bool
}

type firstLocation struct {
	location *messages.Location
}

// NewFirstLocation returns a collector yielding the location of the first
// feature, rule, scenario, examples block or table row visited. Descending
// this is the feature; ascending it is the most specific node.
func NewFirstLocation() Collector[*messages.Location] {
	return &firstLocation{}
}

func (c *firstLocation) set(location messages.Location) {
	if c.location == nil {
		c.location = &location
	}
}

func (c *firstLocation) VisitFeature(feature *messages.Feature) { c.set(feature.Location) }

func (c *firstLocation) VisitRule(rule *messages.Rule) { c.set(rule.Location) }

func (c *firstLocation) VisitScenario(scenario *messages.Scenario) { c.set(scenario.Location) }

func (c *firstLocation) VisitExamples(examples *messages.Examples, _ int) {
	c.set(examples.Location)
}

func (c *firstLocation) VisitExampleRow(row *messages.TableRow, _ int) { c.set(row.Location) }

func (c *firstLocation) Satisfied() bool { return c.location != nil }

func (c *firstLocation) Finish() *messages.Location { return c.location }
