package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	rqtest "github.com/teranos/runquery/internal/testing"
	"github.com/teranos/runquery/messages"
)

func feed(r *Repository, msgs ...any) {
	for _, env := range rqtest.Envelopes(msgs...) {
		r.Update(env)
	}
}

func optionalMessages() []any {
	return []any{
		rqtest.ExamplesTablesDocument(),
		&messages.StepDefinition{ID: "sd-1", Pattern: messages.StepDefinitionPattern{Source: "I eat {int} cucumbers"}},
		&messages.Hook{ID: "hook-1", Name: "before"},
		&messages.Attachment{TestCaseStartedID: "tcs-1", TestStepID: "ts-1", Body: "hello", MediaType: "text/plain"},
		&messages.Suggestion{ID: "sg-1", PickleStepID: "ps-1"},
		&messages.UndefinedParameterType{Name: "flavor", Expression: "{flavor}"},
	}
}

func TestDisabledCategoriesAreNeverWritten(t *testing.T) {
	r := New()
	feed(r, optionalMessages()...)

	assert.Empty(t, r.Documents())
	_, ok := r.NodeLineage("outline")
	assert.False(t, ok)
	_, ok = r.Step("outline-step-1")
	assert.False(t, ok)
	_, ok = r.StepDefinition("sd-1")
	assert.False(t, ok)
	_, ok = r.Hook("hook-1")
	assert.False(t, ok)
	assert.Empty(t, r.Attachments("tcs-1"))
	assert.Empty(t, r.Suggestions("ps-1"))
	assert.Empty(t, r.UndefinedParameterTypes())
	assert.Empty(t, r.Features())
}

func TestEnabledCategoriesAreWritten(t *testing.T) {
	r := New(WithFeatures(AllFeatures()...))
	feed(r, optionalMessages()...)

	assert.Len(t, r.Documents(), 1)
	_, ok := r.NodeLineage("passing-2")
	assert.True(t, ok)
	step, ok := r.Step("outline-step-2")
	require.True(t, ok)
	assert.Equal(t, "I eat <eat> cucumbers", step.Text)
	_, ok = r.StepDefinition("sd-1")
	assert.True(t, ok)
	_, ok = r.Hook("hook-1")
	assert.True(t, ok)
	assert.Len(t, r.Attachments("tcs-1"), 1)
	assert.Len(t, r.Suggestions("ps-1"), 1)
	assert.Len(t, r.UndefinedParameterTypes(), 1)
	assert.Equal(t, AllFeatures(), r.Features())
}

func TestFeaturesAreIndependent(t *testing.T) {
	r := New(WithFeatures(IncludeHooks))
	feed(r, optionalMessages()...)

	assert.True(t, r.Enabled(IncludeHooks))
	assert.False(t, r.Enabled(IncludeAttachments))
	_, ok := r.Hook("hook-1")
	assert.True(t, ok)
	assert.Empty(t, r.Attachments("tcs-1"))
}

func TestStepsOfEveryLevelAreIndexed(t *testing.T) {
	r := New(WithFeatures(IncludeGherkinDocuments))
	feed(r, rqtest.RulesDocument())

	for _, id := range []string{"feature-bg-step", "top-step", "rule-a-bg-step", "rule-a-s1-step"} {
		_, ok := r.Step(id)
		assert.True(t, ok, id)
	}
}

func TestPickleAndTestCaseChildrenAreIndexed(t *testing.T) {
	r := New()
	pickle := rqtest.MinimalPickle()
	tc := rqtest.TestCaseFor("tc-1", pickle)
	feed(r, pickle, tc)

	ps, ok := r.PickleStep("minimal-pickle-step")
	require.True(t, ok)
	assert.Same(t, &pickle.Steps[0], ps)

	ts, ok := r.TestStep("tc-1-ts-1")
	require.True(t, ok)
	assert.Equal(t, "minimal-pickle-step", ts.PickleStepID)
	assert.Len(t, r.TestSteps(), 1)
	assert.Len(t, r.PickleSteps(), 1)
}

func TestAttemptsKeepArrivalOrder(t *testing.T) {
	r := New()
	tc := rqtest.TestCaseFor("tc", rqtest.MinimalPickle())
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		feed(r, &messages.TestCaseStarted{ID: id, TestCaseID: tc.ID})
	}
	// replacing a started attempt keeps its position
	feed(r, &messages.TestCaseStarted{ID: "c", TestCaseID: tc.ID, Attempt: 7})

	started := r.TestCasesStarted()
	require.Len(t, started, 3)
	for i, id := range ids {
		assert.Equal(t, id, started[i].ID)
	}
	assert.Equal(t, int64(7), started[0].Attempt)
}

func TestStepResultsAreAppendOnly(t *testing.T) {
	r := New()
	pickle := rqtest.MinimalPickle()
	tc := rqtest.TestCaseFor("tc", pickle)
	attempt := rqtest.Attempt{ID: "tcs", TestCase: tc, Statuses: []messages.TestStepResultStatus{
		messages.StatusPassed, messages.StatusFailed, messages.StatusSkipped,
	}}
	feed(r, pickle, tc)
	for _, env := range attempt.Envelopes() {
		r.Update(env)
	}

	finished := r.TestStepsFinished("tcs")
	require.Len(t, finished, 3)
	assert.Equal(t, messages.StatusPassed, finished[0].TestStepResult.Status)
	assert.Equal(t, messages.StatusSkipped, finished[2].TestStepResult.Status)
	assert.Len(t, r.TestStepsStarted("tcs"), 3)
	assert.Len(t, r.AllTestStepsFinished(), 3)
	assert.Len(t, r.AllTestStepsStarted(), 3)

	// returned slices are copies
	finished[0] = nil
	assert.NotNil(t, r.TestStepsFinished("tcs")[0])
}

func TestLatestSlotsAreLastWriteWins(t *testing.T) {
	r := New()
	feed(r,
		&messages.Meta{ProtocolVersion: "27.0.0"},
		&messages.Meta{ProtocolVersion: "28.0.0"},
		&messages.TestRunStarted{ID: "run-1"},
		&messages.TestRunStarted{ID: "run-2"},
	)

	meta, ok := r.Meta()
	require.True(t, ok)
	assert.Equal(t, "28.0.0", meta.ProtocolVersion)
	started, ok := r.TestRunStarted()
	require.True(t, ok)
	assert.Equal(t, "run-2", started.ID)
	_, ok = r.TestRunFinished()
	assert.False(t, ok)
}

func TestRunHooksAndTheirAttachments(t *testing.T) {
	r := New(WithFeatures(IncludeAttachments))
	feed(r,
		&messages.TestRunHookStarted{ID: "trh-1", HookID: "hook-1"},
		&messages.Attachment{TestRunHookStartedID: "trh-1", Body: "log"},
		&messages.Attachment{Body: "orphan"},
		&messages.TestRunHookFinished{TestRunHookStartedID: "trh-1", Result: messages.TestStepResult{Status: messages.StatusPassed}},
	)

	_, ok := r.TestRunHookStarted("trh-1")
	assert.True(t, ok)
	finished, ok := r.TestRunHookFinished("trh-1")
	require.True(t, ok)
	assert.Equal(t, messages.StatusPassed, finished.Result.Status)
	assert.Len(t, r.TestRunHookAttachments("trh-1"), 1)
	assert.Equal(t, 1, r.Stats().Attachments)
}

func TestUnknownAndNilMessagesAreIgnored(t *testing.T) {
	r := New()
	r.Update(nil)
	r.Update(&messages.Envelope{})
	r.Update(&messages.Envelope{Source: &messages.Source{URI: "a.feature"}})

	stats := r.Stats()
	assert.Equal(t, 2, stats.Updates)
	assert.Zero(t, stats.Pickles)
}

func TestProtocolVersionWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	constraint, err := semver.NewConstraint(">= 24.0.0")
	require.NoError(t, err)

	r := New(WithLogger(zap.New(core).Sugar()), WithProtocolConstraint(constraint))
	feed(r, &messages.Meta{ProtocolVersion: "28.1.0"})
	assert.Zero(t, logs.Len())

	feed(r, &messages.Meta{ProtocolVersion: "19.1.2"})
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unsupported protocol version", logs.All()[0].Message)
	assert.Equal(t, "19.1.2", logs.All()[0].ContextMap()["protocol_version"])

	feed(r, &messages.Meta{ProtocolVersion: "not-a-version"})
	assert.Equal(t, 1, logs.FilterMessage("unparseable protocol version").Len())
}

func TestDebugLogsIngestedKinds(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(WithLogger(zap.New(core).Sugar()))
	feed(r, rqtest.MinimalPickle(), rqtest.MinimalDocument())

	assert.Equal(t, 1, logs.FilterMessage("ingested message").Len())
	skipped := logs.FilterMessage("skipped disabled category").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "documents", skipped[0].ContextMap()["category"])
}

func TestConcurrentUpdatesAndReads(t *testing.T) {
	r := New(WithFeatures(AllFeatures()...))
	pickle := rqtest.MinimalPickle()
	tc := rqtest.TestCaseFor("tc", pickle)
	feed(r, rqtest.MinimalDocument(), pickle, tc)

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				attempt := rqtest.Attempt{ID: uuid.NewString(), TestCase: tc, Statuses: []messages.TestStepResultStatus{messages.StatusPassed}}
				for _, env := range attempt.Envelopes() {
					r.Update(env)
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			for _, started := range r.TestCasesStarted() {
				// a started attempt is fully applied when visible
				assert.NotEmpty(t, started.ID)
				_ = r.TestStepsFinished(started.ID)
			}
			_ = r.Stats()
		}
	}()
	wg.Wait()

	assert.Len(t, r.TestCasesStarted(), workers*perWorker)
	for _, started := range r.TestCasesStarted() {
		assert.Len(t, r.TestStepsFinished(started.ID), 1, fmt.Sprintf("attempt %s", started.ID))
	}
}

func TestParseFeature(t *testing.T) {
	f, err := ParseFeature("step_definitions")
	require.NoError(t, err)
	assert.Equal(t, IncludeStepDefinitions, f)

	_, err = ParseFeature("sources")
	assert.Error(t, err)
}

func TestReingestedDocumentDoesNotInflateLineages(t *testing.T) {
	r := New(WithFeatures(IncludeGherkinDocuments))
	first := rqtest.MinimalDocument()
	feed(r, first)
	assert.Equal(t, 3, r.Stats().Lineages)

	second := rqtest.MinimalDocument()
	second.Feature.Children[0].Scenario.ID = "minimal-s2"
	feed(r, second)

	assert.Equal(t, 3, r.Stats().Lineages)
	assert.Len(t, r.Documents(), 1)
	_, ok := r.FeatureLineage(first.Feature)
	assert.False(t, ok)
	_, ok = r.NodeLineage("minimal-s2")
	assert.True(t, ok)
}
