package store

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/runquery/lineage"
	"github.com/teranos/runquery/messages"
)

// Reads return the stored messages themselves; callers must not mutate
// them. Slices are copies.

func values[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []V {
	out := make([]V, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func cloned[V any](in []V) []V {
	if len(in) == 0 {
		return nil
	}
	out := make([]V, len(in))
	copy(out, in)
	return out
}

func (r *Repository) Meta() (*messages.Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meta, r.meta != nil
}

func (r *Repository) TestRunStarted() (*messages.TestRunStarted, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testRunStarted, r.testRunStarted != nil
}

func (r *Repository) TestRunFinished() (*messages.TestRunFinished, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testRunFinished, r.testRunFinished != nil
}

// Documents returns ingested documents in arrival order.
func (r *Repository) Documents() []*messages.GherkinDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.documents)
}

func (r *Repository) Step(id string) (*messages.Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stepByID[id]
	return s, ok
}

func (r *Repository) Pickle(id string) (*messages.Pickle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pickleByID.Get(id)
}

func (r *Repository) Pickles() []*messages.Pickle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.pickleByID)
}

func (r *Repository) PickleStep(id string) (*messages.PickleStep, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pickleStepByID.Get(id)
}

func (r *Repository) PickleSteps() []*messages.PickleStep {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.pickleStepByID)
}

func (r *Repository) TestCase(id string) (*messages.TestCase, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testCaseByID.Get(id)
}

func (r *Repository) TestCases() []*messages.TestCase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.testCaseByID)
}

func (r *Repository) TestStep(id string) (*messages.TestStep, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testStepByID.Get(id)
}

func (r *Repository) TestSteps() []*messages.TestStep {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.testStepByID)
}

func (r *Repository) Hook(id string) (*messages.Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hookByID[id]
	return h, ok
}

func (r *Repository) StepDefinition(id string) (*messages.StepDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stepDefinitionByID.Get(id)
}

func (r *Repository) StepDefinitions() []*messages.StepDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.stepDefinitionByID)
}

func (r *Repository) TestCaseStarted(id string) (*messages.TestCaseStarted, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testCaseStartedByID.Get(id)
}

// TestCasesStarted returns every attempt in arrival order, retried ones
// included.
func (r *Repository) TestCasesStarted() []*messages.TestCaseStarted {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.testCaseStartedByID)
}

// TestCaseFinished looks up the finish of an attempt by the attempt's id.
func (r *Repository) TestCaseFinished(testCaseStartedID string) (*messages.TestCaseFinished, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testCaseFinishedByTestCaseStartedID.Get(testCaseStartedID)
}

func (r *Repository) TestCasesFinished() []*messages.TestCaseFinished {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.testCaseFinishedByTestCaseStartedID)
}

func (r *Repository) TestStepsStarted(testCaseStartedID string) []*messages.TestStepStarted {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloned(r.testStepsStartedByTestCaseStartedID[testCaseStartedID])
}

// AllTestStepsStarted returns steps grouped by attempt, attempts in
// arrival order.
func (r *Repository) AllTestStepsStarted() []*messages.TestStepStarted {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*messages.TestStepStarted
	for pair := r.testCaseStartedByID.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, r.testStepsStartedByTestCaseStartedID[pair.Key]...)
	}
	return out
}

func (r *Repository) TestStepsFinished(testCaseStartedID string) []*messages.TestStepFinished {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloned(r.testStepsFinishedByTestCaseStartedID[testCaseStartedID])
}

// AllTestStepsFinished returns steps grouped by attempt, attempts in
// arrival order.
func (r *Repository) AllTestStepsFinished() []*messages.TestStepFinished {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*messages.TestStepFinished
	for pair := r.testCaseStartedByID.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, r.testStepsFinishedByTestCaseStartedID[pair.Key]...)
	}
	return out
}

func (r *Repository) TestRunHookStarted(id string) (*messages.TestRunHookStarted, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testRunHookStartedByID.Get(id)
}

func (r *Repository) TestRunHooksStarted() []*messages.TestRunHookStarted {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.testRunHookStartedByID)
}

func (r *Repository) TestRunHookFinished(testRunHookStartedID string) (*messages.TestRunHookFinished, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testRunHookFinishedByStartedID.Get(testRunHookStartedID)
}

func (r *Repository) TestRunHooksFinished() []*messages.TestRunHookFinished {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return values(r.testRunHookFinishedByStartedID)
}

// Attachments returns the attachments of an attempt in arrival order.
func (r *Repository) Attachments(testCaseStartedID string) []*messages.Attachment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloned(r.attachmentsByTestCaseStartedID[testCaseStartedID])
}

// TestRunHookAttachments returns the attachments of a run-level hook.
func (r *Repository) TestRunHookAttachments(testRunHookStartedID string) []*messages.Attachment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloned(r.attachmentsByTestRunHookStartedID[testRunHookStartedID])
}

func (r *Repository) Suggestions(pickleStepID string) []*messages.Suggestion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloned(r.suggestionsByPickleStepID[pickleStepID])
}

func (r *Repository) UndefinedParameterTypes() []*messages.UndefinedParameterType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloned(r.undefinedParameterTypes)
}

// DocumentLineage returns the root lineage of a document by URI.
func (r *Repository) DocumentLineage(uri string) (*lineage.Lineage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lineages.Document(uri)
}

func (r *Repository) FeatureLineage(feature *messages.Feature) (*lineage.Lineage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lineages.Feature(feature)
}

// NodeLineage returns the lineage of a rule, scenario, examples block or
// table row by id.
func (r *Repository) NodeLineage(id string) (*lineage.Lineage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lineages.Node(id)
}

func (r *Repository) PickleLineage(pickle *messages.Pickle) (*lineage.Lineage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lineages.Pickle(pickle)
}

// Stats counts table sizes.
type Stats struct {
	Updates          int `json:"updates" yaml:"updates" toml:"updates"`
	Documents        int `json:"documents" yaml:"documents" toml:"documents"`
	Lineages         int `json:"lineages" yaml:"lineages" toml:"lineages"`
	Pickles          int `json:"pickles" yaml:"pickles" toml:"pickles"`
	TestCases        int `json:"testCases" yaml:"testCases" toml:"testCases"`
	TestCasesStarted int `json:"testCasesStarted" yaml:"testCasesStarted" toml:"testCasesStarted"`
	StepDefinitions  int `json:"stepDefinitions" yaml:"stepDefinitions" toml:"stepDefinitions"`
	Hooks            int `json:"hooks" yaml:"hooks" toml:"hooks"`
	Attachments      int `json:"attachments" yaml:"attachments" toml:"attachments"`
}

func (r *Repository) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attachments := 0
	for _, list := range r.attachmentsByTestCaseStartedID {
		attachments += len(list)
	}
	for _, list := range r.attachmentsByTestRunHookStartedID {
		attachments += len(list)
	}
	return Stats{
		Updates:          r.updates,
		Documents:        r.documents.Len(),
		Lineages:         r.lineages.Len(),
		Pickles:          r.pickleByID.Len(),
		TestCases:        r.testCaseByID.Len(),
		TestCasesStarted: r.testCaseStartedByID.Len(),
		StepDefinitions:  r.stepDefinitionByID.Len(),
		Hooks:            len(r.hookByID),
		Attachments:      attachments,
	}
}
