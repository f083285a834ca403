package query

import (
	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/lineage"
	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/naming"
)

// Lineage lookups of document nodes fail with errors.ErrNotIndexed when the
// node was never ingested; the caller handed us something that could not
// have come from this store.

func (q *Query) FindLineageByDocument(document *messages.GherkinDocument) (*lineage.Lineage, error) {
	if document == nil {
		return nil, errors.NewNotIndexedError("document", "")
	}
	l, ok := q.repo.DocumentLineage(document.URI)
	if !ok {
		return nil, errors.NewNotIndexedError("document", document.URI)
	}
	return l, nil
}

func (q *Query) FindLineageByFeature(feature *messages.Feature) (*lineage.Lineage, error) {
	if feature == nil {
		return nil, errors.NewNotIndexedError("feature", "")
	}
	l, ok := q.repo.FeatureLineage(feature)
	if !ok {
		return nil, errors.NewNotIndexedError("feature", feature.Name)
	}
	return l, nil
}

func (q *Query) FindLineageByRule(rule *messages.Rule) (*lineage.Lineage, error) {
	if rule == nil {
		return nil, errors.NewNotIndexedError("rule", "")
	}
	return q.nodeLineage("rule", rule.ID)
}

func (q *Query) FindLineageByScenario(scenario *messages.Scenario) (*lineage.Lineage, error) {
	if scenario == nil {
		return nil, errors.NewNotIndexedError("scenario", "")
	}
	return q.nodeLineage("scenario", scenario.ID)
}

func (q *Query) FindLineageByExamples(examples *messages.Examples) (*lineage.Lineage, error) {
	if examples == nil {
		return nil, errors.NewNotIndexedError("examples", "")
	}
	return q.nodeLineage("examples", examples.ID)
}

func (q *Query) FindLineageByTableRow(row *messages.TableRow) (*lineage.Lineage, error) {
	if row == nil {
		return nil, errors.NewNotIndexedError("table row", "")
	}
	return q.nodeLineage("table row", row.ID)
}

func (q *Query) nodeLineage(kind, id string) (*lineage.Lineage, error) {
	l, ok := q.repo.NodeLineage(id)
	if !ok {
		return nil, errors.NewNotIndexedError(kind, id)
	}
	return l, nil
}

// FindLineageByPickle resolves the lineage of the pickle's most specific
// ast node. Absent while the document has not arrived.
func (q *Query) FindLineageByPickle(pickle *messages.Pickle) (*lineage.Lineage, bool) {
	if pickle == nil {
		return nil, false
	}
	return q.repo.PickleLineage(pickle)
}

func (q *Query) FindLineageByTestCaseStarted(started *messages.TestCaseStarted) (*lineage.Lineage, bool) {
	pickle, ok := q.FindPickleBy(started)
	if !ok {
		return nil, false
	}
	return q.FindLineageByPickle(pickle)
}

func (q *Query) FindLineageByTestCaseFinished(finished *messages.TestCaseFinished) (*lineage.Lineage, bool) {
	if finished == nil {
		return nil, false
	}
	started, ok := q.repo.TestCaseStarted(finished.TestCaseStartedID)
	if !ok {
		return nil, false
	}
	return q.FindLineageByTestCaseStarted(started)
}

// FindFeatureBy resolves the feature an attempt's pickle belongs to.
func (q *Query) FindFeatureBy(started *messages.TestCaseStarted) (*messages.Feature, bool) {
	l, ok := q.FindLineageByTestCaseStarted(started)
	if !ok || l.Feature() == nil {
		return nil, false
	}
	return l.Feature(), true
}

// FindLocationOf returns the example row's location when the pickle was
// generated from one, else its scenario's.
func (q *Query) FindLocationOf(pickle *messages.Pickle) (*messages.Location, bool) {
	l, ok := q.FindLineageByPickle(pickle)
	if !ok {
		return nil, false
	}
	if row := l.ExampleRow(); row != nil {
		loc := row.Location
		return &loc, true
	}
	if scenario := l.Scenario(); scenario != nil {
		loc := scenario.Location
		return &loc, true
	}
	return nil, false
}

func (q *Query) FindNameOfDocument(document *messages.GherkinDocument, strategy naming.Strategy) (string, error) {
	return nameOf(q.FindLineageByDocument(document))(strategy)
}

func (q *Query) FindNameOfFeature(feature *messages.Feature, strategy naming.Strategy) (string, error) {
	return nameOf(q.FindLineageByFeature(feature))(strategy)
}

func (q *Query) FindNameOfRule(rule *messages.Rule, strategy naming.Strategy) (string, error) {
	return nameOf(q.FindLineageByRule(rule))(strategy)
}

func (q *Query) FindNameOfScenario(scenario *messages.Scenario, strategy naming.Strategy) (string, error) {
	return nameOf(q.FindLineageByScenario(scenario))(strategy)
}

func (q *Query) FindNameOfExamples(examples *messages.Examples, strategy naming.Strategy) (string, error) {
	return nameOf(q.FindLineageByExamples(examples))(strategy)
}

func (q *Query) FindNameOfTableRow(row *messages.TableRow, strategy naming.Strategy) (string, error) {
	return nameOf(q.FindLineageByTableRow(row))(strategy)
}

func nameOf(l *lineage.Lineage, err error) func(naming.Strategy) (string, error) {
	return func(strategy naming.Strategy) (string, error) {
		if err != nil {
			return "", err
		}
		return strategy.Reduce(l), nil
	}
}

// FindNameOfPickle names a pickle in the context of its lineage, falling
// back to the pickle's own name when its document is unknown.
func (q *Query) FindNameOfPickle(pickle *messages.Pickle, strategy naming.Strategy) string {
	if pickle == nil {
		return ""
	}
	l, ok := q.FindLineageByPickle(pickle)
	if !ok {
		q.log.Debugw("naming pickle without lineage", logger.FieldPickle, pickle.ID)
		return pickle.Name
	}
	return strategy.ReduceWithPickle(l, pickle)
}

// FeatureGroup is the attempts of one feature. Feature is nil for the
// bucket of attempts whose feature could not be resolved.
type FeatureGroup struct {
	Feature *messages.Feature
	Starts  []*messages.TestCaseStarted
}

// FindAllTestCaseStartedGroupedByFeature groups FindAllTestCaseStarted by
// feature, in order of first appearance of each group.
func (q *Query) FindAllTestCaseStartedGroupedByFeature() []FeatureGroup {
	var groups []FeatureGroup
	position := make(map[*messages.Feature]int)
	for _, started := range q.FindAllTestCaseStarted() {
		feature, _ := q.FindFeatureBy(started)
		i, ok := position[feature]
		if !ok {
			i = len(groups)
			position[feature] = i
			groups = append(groups, FeatureGroup{Feature: feature})
		}
		groups[i].Starts = append(groups[i].Starts, started)
	}
	return groups
}
