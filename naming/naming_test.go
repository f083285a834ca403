package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/runquery/errors"
	rqtest "github.com/teranos/runquery/internal/testing"
	"github.com/teranos/runquery/lineage"
	"github.com/teranos/runquery/messages"
)

func examplesIndex(t *testing.T) *lineage.Index {
	t.Helper()
	index := lineage.NewIndex()
	index.Add(rqtest.ExamplesTablesDocument())
	index.Add(rqtest.RulesDocument())
	return index
}

func nameOfPickle(t *testing.T, s Strategy, pickle *messages.Pickle) string {
	t.Helper()
	l, ok := examplesIndex(t).Pickle(pickle)
	require.True(t, ok)
	return s.ReduceWithPickle(l, pickle)
}

func TestPickleNames(t *testing.T) {
	pickles := rqtest.ExamplesTablesPickles()
	first, last := pickles[0], pickles[3]

	tests := []struct {
		name     string
		strategy Strategy
		pickle   *messages.Pickle
		want     string
	}{
		{
			name:     "long number and pickle if parameterized",
			strategy: New(Long, WithExampleName(NumberAndPickleIfParameterized)),
			pickle:   first,
			want:     "Examples Tables - Eating <eat> cucumbers - These are passing - #1.1: Eating 5 cucumbers",
		},
		{
			name:     "long number",
			strategy: New(Long),
			pickle:   first,
			want:     "Examples Tables - Eating <eat> cucumbers - These are passing - #1.1",
		},
		{
			name:     "long pickle",
			strategy: New(Long, WithExampleName(Pickle)),
			pickle:   first,
			want:     "Examples Tables - Eating <eat> cucumbers - These are passing - Eating 5 cucumbers",
		},
		{
			name:     "long exclude feature",
			strategy: New(Long, WithFeatureName(ExcludeFeature)),
			pickle:   last,
			want:     "Eating <eat> cucumbers - These are failing - #2.2",
		},
		{
			name:     "short number",
			strategy: New(Short),
			pickle:   first,
			want:     "#1.1",
		},
		{
			name:     "short number second block",
			strategy: New(Short, WithExampleName(Number)),
			pickle:   last,
			want:     "#2.2",
		},
		{
			name:     "short pickle",
			strategy: New(Short, WithExampleName(Pickle)),
			pickle:   first,
			want:     "Eating 5 cucumbers",
		},
		{
			name:     "short number and pickle",
			strategy: New(Short, WithExampleName(NumberAndPickleIfParameterized)),
			pickle:   last,
			want:     "Eating 1 cucumbers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameOfPickle(t, tt.strategy, tt.pickle))
		})
	}
}

func TestUnparameterizedExampleKeepsNumberOnly(t *testing.T) {
	pickle := rqtest.ExamplesTablesPickles()[0]
	pickle.Name = "Eating <eat> cucumbers"

	got := nameOfPickle(t, New(Long, WithExampleName(NumberAndPickleIfParameterized)), pickle)
	assert.Equal(t, "Examples Tables - Eating <eat> cucumbers - These are passing - #1.1", got)
}

func TestScenarioPickle(t *testing.T) {
	index := lineage.NewIndex()
	index.Add(rqtest.MinimalDocument())
	pickle := rqtest.MinimalPickle()
	l, ok := index.Pickle(pickle)
	require.True(t, ok)

	assert.Equal(t, "minimal - cukes", New(Long).ReduceWithPickle(l, pickle))
	assert.Equal(t, "cukes", New(Short).ReduceWithPickle(l, pickle))
}

func TestPickleWithoutLineageFallsBackToItsName(t *testing.T) {
	pickle := rqtest.MinimalPickle()
	assert.Equal(t, "cukes", New(Long).ReduceWithPickle(nil, pickle))
	assert.Equal(t, "cukes", New(Short).ReduceWithPickle(nil, pickle))
}

func TestNodeNames(t *testing.T) {
	index := examplesIndex(t)
	node := func(id string) *lineage.Lineage {
		l, ok := index.Node(id)
		require.True(t, ok, id)
		return l
	}

	long := New(Long)
	assert.Equal(t, "Usage of a Rule - A sale cannot happen if change cannot be returned - Not enough money",
		long.Reduce(node("rule-a-s1")))
	assert.Equal(t, "Usage of a Rule - A sale cannot happen if change cannot be returned",
		long.Reduce(node("rule-a")))
	assert.Equal(t, "Examples Tables - Eating <eat> cucumbers - These are failing - #2.1",
		long.Reduce(node("failing-1")))

	short := New(Short)
	assert.Equal(t, "Not enough money", short.Reduce(node("rule-a-s1")))
	assert.Equal(t, "These are passing", short.Reduce(node("passing")))
	assert.Equal(t, "#1.2", short.Reduce(node("passing-2")))

	doc := rqtest.RulesDocument()
	index.Add(doc)
	feature, ok := index.Feature(doc.Feature)
	require.True(t, ok)
	assert.Equal(t, "Usage of a Rule", short.Reduce(feature))
	assert.Equal(t, "Usage of a Rule", New(Short, WithFeatureName(ExcludeFeature)).Reduce(feature))
	assert.Equal(t, "", New(Long, WithFeatureName(ExcludeFeature)).Reduce(feature))
}

func TestDocumentName(t *testing.T) {
	l := lineage.Of(rqtest.FeaturelessDocument())
	assert.Equal(t, "", New(Long).Reduce(l))
	assert.Equal(t, "", New(Short).Reduce(l))
}

func TestEmptyPiecesAreDropped(t *testing.T) {
	doc := rqtest.ExamplesTablesDocument()
	doc.Feature.Children[0].Scenario.Examples[0].Name = ""
	index := lineage.NewIndex()
	index.Add(doc)

	l, ok := index.Node("passing-1")
	require.True(t, ok)
	assert.Equal(t, "Examples Tables - Eating <eat> cucumbers - #1.1", New(Long).Reduce(l))
}

func TestStrategyDefaults(t *testing.T) {
	s := New(Long)
	assert.Equal(t, Long, s.Length())
	assert.Equal(t, IncludeFeature, s.FeatureName())
	assert.Equal(t, Number, s.ExampleName())
	assert.Equal(t, lineage.Descending, s.Reducer().Order())
}

func TestParse(t *testing.T) {
	l, err := ParseLength("SHORT")
	require.NoError(t, err)
	assert.Equal(t, Short, l)

	f, err := ParseFeatureName(" exclude ")
	require.NoError(t, err)
	assert.Equal(t, ExcludeFeature, f)

	e, err := ParseExampleName("number-and-pickle-if-parameterized")
	require.NoError(t, err)
	assert.Equal(t, NumberAndPickleIfParameterized, e)

	_, err = ParseExampleName("ordinal")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.Contains(t, errors.FlattenHints(err), "number, number_and_pickle_if_parameterized, pickle")
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "short", Short.String())
	assert.Equal(t, "exclude", ExcludeFeature.String())
	assert.Equal(t, "pickle", Pickle.String())
}
