// Package naming derives display names for document nodes and pickles from
// their lineage, for outputs that lose the original nesting.
package naming

import (
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/lineage"
	"github.com/teranos/runquery/messages"
)

// Delimiter joins the pieces of a long name.
const Delimiter = " - "

// Length selects between the full ancestor path and the most specific piece.
type Length int

const (
	Long Length = iota
	Short
)

// FeatureName controls whether long names start with the feature name.
type FeatureName int

const (
	IncludeFeature FeatureName = iota
	ExcludeFeature
)

// ExampleName controls how pickles compiled from example rows are named.
type ExampleName int

const (
	// Number names the row by "#<examples>.<row>", both 1-based.
	Number ExampleName = iota
	// Pickle names the row by the pickle's resolved name.
	Pickle
	// NumberAndPickleIfParameterized keeps the number and appends
	// ": <pickle name>" when the name differs from the scenario's.
	NumberAndPickleIfParameterized
)

var (
	lengthNames      = map[Length]string{Long: "long", Short: "short"}
	featureNames     = map[FeatureName]string{IncludeFeature: "include", ExcludeFeature: "exclude"}
	exampleNameNames = map[ExampleName]string{
		Number:                         "number",
		Pickle:                         "pickle",
		NumberAndPickleIfParameterized: "number_and_pickle_if_parameterized",
	}
)

func (l Length) String() string      { return lengthNames[l] }
func (f FeatureName) String() string { return featureNames[f] }
func (e ExampleName) String() string { return exampleNameNames[e] }

// ParseLength accepts "long" or "short" in any case.
func ParseLength(s string) (Length, error) {
	return parseEnum(s, lengthNames, "naming strategy")
}

// ParseFeatureName accepts "include" or "exclude" in any case.
func ParseFeatureName(s string) (FeatureName, error) {
	return parseEnum(s, featureNames, "feature name policy")
}

// ParseExampleName accepts "number", "pickle" or
// "number_and_pickle_if_parameterized" in any case; hyphens are accepted
// in place of underscores.
func ParseExampleName(s string) (ExampleName, error) {
	return parseEnum(s, exampleNameNames, "example name policy")
}

func parseEnum[E comparable](s string, names map[E]string, what string) (E, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for value, name := range names {
		if name == normalized {
			return value, nil
		}
	}
	var zero E
	allowed := make([]string, 0, len(names))
	for _, name := range names {
		allowed = append(allowed, name)
	}
	sort.Strings(allowed)
	return zero, errors.WithHintf(
		errors.NewInvalidRequestError("unknown %s %q", what, s),
		"one of: %s", strings.Join(allowed, ", "))
}

// Strategy is a configured name reducer. The zero value is not usable;
// construct one with New.
type Strategy struct {
	length      Length
	featureName FeatureName
	exampleName ExampleName
	reducer     lineage.Reducer[string]
}

type Option func(*Strategy)

// WithFeatureName sets the feature name policy. Default IncludeFeature.
func WithFeatureName(f FeatureName) Option {
	return func(s *Strategy) { s.featureName = f }
}

// WithExampleName sets the example name policy. Default Number.
func WithExampleName(e ExampleName) Option {
	return func(s *Strategy) { s.exampleName = e }
}

func New(length Length, opts ...Option) Strategy {
	s := Strategy{length: length, featureName: IncludeFeature, exampleName: Number}
	for _, opt := range opts {
		opt(&s)
	}
	cfg := s
	s.reducer = lineage.NewDescending(func() lineage.Collector[string] {
		return &collector{
			length:      cfg.length,
			featureName: cfg.featureName,
			exampleName: cfg.exampleName,
		}
	})
	return s
}

func (s Strategy) Length() Length           { return s.length }
func (s Strategy) FeatureName() FeatureName { return s.featureName }
func (s Strategy) ExampleName() ExampleName { return s.exampleName }

// Reduce names the node whose lineage is given.
func (s Strategy) Reduce(l *lineage.Lineage) string {
	return s.reducer.Reduce(l)
}

// ReduceWithPickle names a pickle compiled from the node whose lineage is
// given.
func (s Strategy) ReduceWithPickle(l *lineage.Lineage, pickle *messages.Pickle) string {
	return s.reducer.ReduceWithPickle(l, pickle)
}

// Reducer exposes the underlying lineage reducer.
func (s Strategy) Reducer() lineage.Reducer[string] {
	return s.reducer
}

type collector struct {
	length      Length
	featureName FeatureName
	exampleName ExampleName

	parts         []string
	scenarioName  *string
	isExample     bool
	examplesIndex int
	pickleName    *string
}

func (c *collector) VisitFeature(f *messages.Feature) {
	if c.featureName == IncludeFeature || c.length == Short {
		c.parts = append(c.parts, f.Name)
	}
}

func (c *collector) VisitRule(r *messages.Rule) {
	c.parts = append(c.parts, r.Name)
}

func (c *collector) VisitScenario(s *messages.Scenario) {
	name := s.Name
	c.scenarioName = &name
	c.parts = append(c.parts, name)
}

func (c *collector) VisitExamples(e *messages.Examples, index int) {
	c.parts = append(c.parts, e.Name)
	c.examplesIndex = index
}

func (c *collector) VisitExampleRow(_ *messages.TableRow, index int) {
	c.isExample = true
	c.parts = append(c.parts, "#"+strconv.Itoa(c.examplesIndex+1)+"."+strconv.Itoa(index+1))
}

func (c *collector) VisitPickle(p *messages.Pickle) {
	name := p.Name
	c.pickleName = &name

	if c.scenarioName == nil {
		c.parts = append(c.parts, name)
		return
	}
	if !c.isExample {
		return
	}
	last := len(c.parts) - 1
	switch c.exampleName {
	case NumberAndPickleIfParameterized:
		if *c.scenarioName != name {
			c.parts[last] = c.parts[last] + ": " + name
		}
	case Pickle:
		c.parts[last] = name
	}
}

func (c *collector) Finish() string {
	if c.length == Short {
		return c.short()
	}
	pieces := make([]string, 0, len(c.parts))
	for _, p := range c.parts {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return strings.Join(pieces, Delimiter)
}

// short is the pickle's own name, or the row number alone under Number.
// Without a pickle it is the most specific piece.
func (c *collector) short() string {
	if c.pickleName != nil && c.isExample && c.exampleName == Number {
		return c.parts[len(c.parts)-1]
	}
	if c.pickleName != nil {
		return *c.pickleName
	}
	if len(c.parts) == 0 {
		return ""
	}
	return c.parts[len(c.parts)-1]
}
