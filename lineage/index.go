package lineage

import "github.com/teranos/runquery/messages"

// Index maps document nodes to their lineage. Documents are keyed by URI,
// features by identity, and rules, scenarios, examples and table rows by
// id. An Index is not safe for concurrent use; callers serialize access.
type Index struct {
	documents map[string]*Lineage
	features  map[*messages.Feature]*Lineage
	nodes     map[string]*Lineage
}

func NewIndex() *Index {
	return &Index{
		documents: make(map[string]*Lineage),
		features:  make(map[*messages.Feature]*Lineage),
		nodes:     make(map[string]*Lineage),
	}
}

// Add indexes every node of document and returns the number of lineages
// published. Re-adding a URI first drops every lineage of the previous
// document with that URI, including nodes the new version no longer has.
func (x *Index) Add(document *messages.GherkinDocument) int {
	if document == nil {
		return 0
	}
	if _, ok := x.documents[document.URI]; ok {
		x.forget(document.URI)
	}
	root := Of(document)
	x.documents[document.URI] = root
	n := 1

	feature := document.Feature
	if feature == nil {
		return n
	}

	var background *messages.Background
	for _, child := range feature.Children {
		if child.Background != nil {
			background = child.Background
			break
		}
	}
	parent := root.withFeature(feature, background)
	x.features[feature] = parent
	n++

	for _, child := range feature.Children {
		switch {
		case child.Scenario != nil:
			n += x.addScenario(parent, child.Scenario)
		case child.Rule != nil:
			n += x.addRule(parent, child.Rule)
		}
	}
	return n
}

// forget removes the lineages published for the document at uri.
func (x *Index) forget(uri string) {
	delete(x.documents, uri)
	for f, l := range x.features {
		if l.document.URI == uri {
			delete(x.features, f)
		}
	}
	for id, l := range x.nodes {
		if l.document.URI == uri {
			delete(x.nodes, id)
		}
	}
}

func (x *Index) addRule(parent *Lineage, rule *messages.Rule) int {
	var background *messages.Background
	for _, child := range rule.Children {
		if child.Background != nil {
			background = child.Background
			break
		}
	}
	lineage := parent.withRule(rule, background)
	x.nodes[rule.ID] = lineage
	n := 1

	for _, child := range rule.Children {
		if child.Scenario != nil {
			n += x.addScenario(lineage, child.Scenario)
		}
	}
	return n
}

func (x *Index) addScenario(parent *Lineage, scenario *messages.Scenario) int {
	lineage := parent.withScenario(scenario)
	x.nodes[scenario.ID] = lineage
	n := 1

	for i := range scenario.Examples {
		examples := &scenario.Examples[i]
		examplesLineage := lineage.withExamples(examples, i)
		x.nodes[examples.ID] = examplesLineage
		n++

		for j := range examples.TableBody {
			row := &examples.TableBody[j]
			x.nodes[row.ID] = examplesLineage.withExampleRow(row, j)
			n++
		}
	}
	return n
}

// Document returns the root lineage of the document with the given URI.
func (x *Index) Document(uri string) (*Lineage, bool) {
	l, ok := x.documents[uri]
	return l, ok
}

// Feature returns the lineage of a feature previously added through its
// document. Lookup is by identity.
func (x *Index) Feature(feature *messages.Feature) (*Lineage, bool) {
	l, ok := x.features[feature]
	return l, ok
}

// Node returns the lineage of a rule, scenario, examples block or table row.
func (x *Index) Node(id string) (*Lineage, bool) {
	l, ok := x.nodes[id]
	return l, ok
}

// Pickle resolves a pickle through its anchor, the last of its ast node ids.
func (x *Index) Pickle(pickle *messages.Pickle) (*Lineage, bool) {
	anchor, ok := pickle.Anchor()
	if !ok {
		return nil, false
	}
	return x.Node(anchor)
}

// Len returns the number of indexed lineages.
func (x *Index) Len() int {
	return len(x.documents) + len(x.features) + len(x.nodes)
}
