// Package testing holds message fixtures shared by package tests.
package testing

import (
	"fmt"

	"github.com/teranos/runquery/internal/util"
	"github.com/teranos/runquery/messages"
)

func loc(line int64) messages.Location {
	return messages.Location{Line: line}
}

func row(id string, line int64, values ...string) messages.TableRow {
	cells := make([]messages.TableCell, len(values))
	for i, v := range values {
		cells[i] = messages.TableCell{Location: loc(line), Value: v}
	}
	return messages.TableRow{ID: id, Location: loc(line), Cells: cells}
}

func step(id string, line int64, keyword, text string) messages.Step {
	return messages.Step{ID: id, Location: loc(line), Keyword: keyword, Text: text}
}

// ExamplesTablesURI is the URI of ExamplesTablesDocument.
const ExamplesTablesURI = "samples/examples-tables/examples-tables.feature"

// ExamplesTablesDocument is a scenario outline with two examples blocks of
// two rows each:
//
//	Feature: Examples Tables
//	  Scenario Outline: Eating <eat> cucumbers        (id "outline")
//	    Given there are <start> cucumbers               (id "outline-step-1")
//	    When I eat <eat> cucumbers                      (id "outline-step-2")
//	    Examples: These are passing                   (id "passing")
//	      | 12 | 5 |  (id "passing-1")
//	      | 20 | 5 |  (id "passing-2")
//	    Examples: These are failing                   (id "failing")
//	      | 12 | 20 | (id "failing-1")
//	      |  0 |  1 | (id "failing-2")
func ExamplesTablesDocument() *messages.GherkinDocument {
	return &messages.GherkinDocument{
		URI: ExamplesTablesURI,
		Feature: &messages.Feature{
			Location: loc(1),
			Language: "en",
			Keyword:  "Feature",
			Name:     "Examples Tables",
			Children: []messages.FeatureChild{{
				Scenario: &messages.Scenario{
					ID:       "outline",
					Location: loc(3),
					Keyword:  "Scenario Outline",
					Name:     "Eating <eat> cucumbers",
					Steps: []messages.Step{
						step("outline-step-1", 4, "Given ", "there are <start> cucumbers"),
						step("outline-step-2", 5, "When ", "I eat <eat> cucumbers"),
					},
					Examples: []messages.Examples{
						{
							ID:          "passing",
							Location:    loc(7),
							Keyword:     "Examples",
							Name:        "These are passing",
							TableHeader: util.Ptr(row("passing-header", 8, "start", "eat")),
							TableBody: []messages.TableRow{
								row("passing-1", 9, "12", "5"),
								row("passing-2", 10, "20", "5"),
							},
						},
						{
							ID:          "failing",
							Location:    loc(12),
							Keyword:     "Examples",
							Name:        "These are failing",
							TableHeader: util.Ptr(row("failing-header", 13, "start", "eat")),
							TableBody: []messages.TableRow{
								row("failing-1", 14, "12", "20"),
								row("failing-2", 15, "0", "1"),
							},
						},
					},
				},
			}},
		},
	}
}

// ExamplesTablesPickles compiles ExamplesTablesDocument. Pickle ids are
// "pickle-<row id>".
func ExamplesTablesPickles() []*messages.Pickle {
	doc := ExamplesTablesDocument()
	outline := doc.Feature.Children[0].Scenario

	var pickles []*messages.Pickle
	for _, examples := range outline.Examples {
		for _, r := range examples.TableBody {
			start, eat := r.Cells[0].Value, r.Cells[1].Value
			id := "pickle-" + r.ID
			pickles = append(pickles, &messages.Pickle{
				ID:         id,
				URI:        ExamplesTablesURI,
				Location:   util.Ptr(r.Location),
				Name:       fmt.Sprintf("Eating %s cucumbers", eat),
				Language:   "en",
				AstNodeIDs: []string{outline.ID, r.ID},
				Steps: []messages.PickleStep{
					{ID: id + "-step-1", AstNodeIDs: []string{"outline-step-1", r.ID}, Type: "Context", Text: fmt.Sprintf("there are %s cucumbers", start)},
					{ID: id + "-step-2", AstNodeIDs: []string{"outline-step-2", r.ID}, Type: "Action", Text: fmt.Sprintf("I eat %s cucumbers", eat)},
				},
			})
		}
	}
	return pickles
}

// RulesURI is the URI of RulesDocument.
const RulesURI = "samples/rules/rules.feature"

// RulesDocument exercises backgrounds at both levels:
//
//	Feature: Usage of a Rule
//	  Background: feature background       (id "feature-bg")
//	  Scenario: outside any rule           (id "top")
//	  Rule: A sale cannot happen           (id "rule-a")
//	    Background: rule background        (id "rule-a-bg")
//	    Scenario: Not enough money         (id "rule-a-s1")
//	  Rule: Without background             (id "rule-b")
//	    Scenario: Plain                    (id "rule-b-s1")
func RulesDocument() *messages.GherkinDocument {
	return &messages.GherkinDocument{
		URI: RulesURI,
		Feature: &messages.Feature{
			Location: loc(1),
			Language: "en",
			Keyword:  "Feature",
			Name:     "Usage of a Rule",
			Children: []messages.FeatureChild{
				{Background: &messages.Background{
					ID: "feature-bg", Location: loc(3), Keyword: "Background", Name: "feature background",
					Steps: []messages.Step{step("feature-bg-step", 4, "Given ", "a shop")},
				}},
				{Scenario: &messages.Scenario{
					ID: "top", Location: loc(6), Keyword: "Scenario", Name: "outside any rule",
					Steps: []messages.Step{step("top-step", 7, "Then ", "nothing happens")},
				}},
				{Rule: &messages.Rule{
					ID: "rule-a", Location: loc(9), Keyword: "Rule", Name: "A sale cannot happen if change cannot be returned",
					Children: []messages.RuleChild{
						{Background: &messages.Background{
							ID: "rule-a-bg", Location: loc(10), Keyword: "Background", Name: "rule background",
							Steps: []messages.Step{step("rule-a-bg-step", 11, "Given ", "there are 5 0.20 coins")},
						}},
						{Scenario: &messages.Scenario{
							ID: "rule-a-s1", Location: loc(13), Keyword: "Example", Name: "Not enough money",
							Steps: []messages.Step{step("rule-a-s1-step", 14, "When ", "the customer pays 1.00")},
						}},
					},
				}},
				{Rule: &messages.Rule{
					ID: "rule-b", Location: loc(16), Keyword: "Rule", Name: "Without background",
					Children: []messages.RuleChild{
						{Scenario: &messages.Scenario{
							ID: "rule-b-s1", Location: loc(17), Keyword: "Example", Name: "Plain",
						}},
					},
				}},
			},
		},
	}
}

// MinimalURI is the URI of MinimalDocument.
const MinimalURI = "samples/minimal/minimal.feature"

// MinimalDocument is one scenario "cukes" (id "minimal-s1") with one step
// (id "minimal-step").
func MinimalDocument() *messages.GherkinDocument {
	return &messages.GherkinDocument{
		URI: MinimalURI,
		Feature: &messages.Feature{
			Location: loc(1),
			Language: "en",
			Keyword:  "Feature",
			Name:     "minimal",
			Children: []messages.FeatureChild{{
				Scenario: &messages.Scenario{
					ID: "minimal-s1", Location: loc(3), Keyword: "Scenario", Name: "cukes",
					Steps: []messages.Step{step("minimal-step", 4, "Given ", "I have 42 cukes in my belly")},
				},
			}},
		},
	}
}

// MinimalPickle compiles MinimalDocument's scenario.
func MinimalPickle() *messages.Pickle {
	return &messages.Pickle{
		ID:         "minimal-pickle",
		URI:        MinimalURI,
		Location:   util.Ptr(loc(3)),
		Name:       "cukes",
		Language:   "en",
		AstNodeIDs: []string{"minimal-s1"},
		Steps: []messages.PickleStep{
			{ID: "minimal-pickle-step", AstNodeIDs: []string{"minimal-step"}, Type: "Context", Text: "I have 42 cukes in my belly"},
		},
	}
}

// FeaturelessDocument has no Feature keyword.
func FeaturelessDocument() *messages.GherkinDocument {
	return &messages.GherkinDocument{URI: "samples/empty/empty.feature"}
}
