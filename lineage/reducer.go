package lineage

import "github.com/teranos/runquery/messages"

// Order is the traversal order of a Reducer.
type Order int

const (
	// Descending visits document, feature, background, rule, rule
	// background, scenario, examples, example row, then the pickle.
	Descending Order = iota
	// Ascending visits the pickle first, then the same ancestors in
	// reverse, ending at the document.
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// Reducer folds a lineage into a T. Each reduction uses a fresh collector
// from the factory, so one Reducer may be shared between goroutines.
type Reducer[T any] struct {
	factory      func() Collector[T]
	order        Order
	shortCircuit bool
}

type Option func(*options)

type options struct {
	shortCircuit bool
}

// ShortCircuit stops a traversal as soon as the collector reports it is
// satisfied (see Satisfier). Without it every present ancestor is visited,
// including the document.
func ShortCircuit() Option {
	return func(o *options) { o.shortCircuit = true }
}

// NewReducer returns a reducer visiting lineages in the given order.
func NewReducer[T any](order Order, factory func() Collector[T], opts ...Option) Reducer[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return Reducer[T]{factory: factory, order: order, shortCircuit: o.shortCircuit}
}

// NewDescending is NewReducer(Descending, ...).
func NewDescending[T any](factory func() Collector[T], opts ...Option) Reducer[T] {
	return NewReducer(Descending, factory, opts...)
}

// NewAscending is NewReducer(Ascending, ...).
func NewAscending[T any](factory func() Collector[T], opts ...Option) Reducer[T] {
	return NewReducer(Ascending, factory, opts...)
}

func (r Reducer[T]) Order() Order { return r.order }

// Reduce folds lineage without pickle context. A nil lineage visits
// nothing.
func (r Reducer[T]) Reduce(lineage *Lineage) T {
	return r.reduce(lineage, nil)
}

// ReduceWithPickle folds lineage and pickle. The pickle is visited last
// when descending and first when ascending.
func (r Reducer[T]) ReduceWithPickle(lineage *Lineage, pickle *messages.Pickle) T {
	return r.reduce(lineage, pickle)
}

func (r Reducer[T]) reduce(lineage *Lineage, pickle *messages.Pickle) T {
	collector := r.factory()
	w := &walker{collector: collector, shortCircuit: r.shortCircuit}

	if r.order == Ascending {
		w.pickle(pickle)
		w.ascend(lineage)
	} else {
		w.descend(lineage)
		w.pickle(pickle)
	}
	return collector.Finish()
}

type walker struct {
	collector    any
	shortCircuit bool
}

func (w *walker) done() bool {
	if !w.shortCircuit {
		return false
	}
	s, ok := w.collector.(Satisfier)
	return ok && s.Satisfied()
}

func (w *walker) descend(l *Lineage) {
	if l == nil {
		return
	}
	w.document(l.document)
	w.feature(l.feature)
	w.background(l.background)
	w.rule(l.rule)
	w.ruleBackground(l.ruleBackground)
	w.scenario(l.scenario)
	w.examples(l.examples, l.examplesIndex)
	w.exampleRow(l.exampleRow, l.exampleRowIndex)
}

func (w *walker) ascend(l *Lineage) {
	if l == nil {
		return
	}
	w.exampleRow(l.exampleRow, l.exampleRowIndex)
	w.examples(l.examples, l.examplesIndex)
	w.scenario(l.scenario)
	w.ruleBackground(l.ruleBackground)
	w.rule(l.rule)
	w.background(l.background)
	w.feature(l.feature)
	w.document(l.document)
}

func (w *walker) document(d *messages.GherkinDocument) {
	if v, ok := w.collector.(DocumentVisitor); ok && d != nil && !w.done() {
		v.VisitDocument(d)
	}
}

func (w *walker) feature(f *messages.Feature) {
	if v, ok := w.collector.(FeatureVisitor); ok && f != nil && !w.done() {
		v.VisitFeature(f)
	}
}

func (w *walker) background(b *messages.Background) {
	if v, ok := w.collector.(BackgroundVisitor); ok && b != nil && !w.done() {
		v.VisitBackground(b)
	}
}

func (w *walker) rule(r *messages.Rule) {
	if v, ok := w.collector.(RuleVisitor); ok && r != nil && !w.done() {
		v.VisitRule(r)
	}
}

func (w *walker) ruleBackground(b *messages.Background) {
	if v, ok := w.collector.(RuleBackgroundVisitor); ok && b != nil && !w.done() {
		v.VisitRuleBackground(b)
	}
}

func (w *walker) scenario(s *messages.Scenario) {
	if v, ok := w.collector.(ScenarioVisitor); ok && s != nil && !w.done() {
		v.VisitScenario(s)
	}
}

func (w *walker) examples(e *messages.Examples, index int) {
	if v, ok := w.collector.(ExamplesVisitor); ok && e != nil && !w.done() {
		v.VisitExamples(e, index)
	}
}

func (w *walker) exampleRow(r *messages.TableRow, index int) {
	if v, ok := w.collector.(ExampleRowVisitor); ok && r != nil && !w.done() {
		v.VisitExampleRow(r, index)
	}
}

func (w *walker) pickle(p *messages.Pickle) {
	if v, ok := w.collector.(PickleVisitor); ok && p != nil && !w.done() {
		v.VisitPickle(p)
	}
}
