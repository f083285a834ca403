package query

import "github.com/teranos/runquery/messages"

func (q *Query) FindTestCaseBy(started *messages.TestCaseStarted) (*messages.TestCase, bool) {
	if started == nil {
		return nil, false
	}
	return q.repo.TestCase(started.TestCaseID)
}

func (q *Query) FindTestCaseByTestStepStarted(stepStarted *messages.TestStepStarted) (*messages.TestCase, bool) {
	started, ok := q.FindTestCaseStartedBy(stepStarted)
	if !ok {
		return nil, false
	}
	return q.FindTestCaseBy(started)
}

func (q *Query) FindTestCaseStartedBy(stepStarted *messages.TestStepStarted) (*messages.TestCaseStarted, bool) {
	if stepStarted == nil {
		return nil, false
	}
	return q.repo.TestCaseStarted(stepStarted.TestCaseStartedID)
}

func (q *Query) FindTestCaseFinishedBy(started *messages.TestCaseStarted) (*messages.TestCaseFinished, bool) {
	if started == nil {
		return nil, false
	}
	return q.repo.TestCaseFinished(started.ID)
}

func (q *Query) FindPickleBy(started *messages.TestCaseStarted) (*messages.Pickle, bool) {
	tc, ok := q.FindTestCaseBy(started)
	if !ok {
		return nil, false
	}
	return q.repo.Pickle(tc.PickleID)
}

func (q *Query) FindPickleByTestStepStarted(stepStarted *messages.TestStepStarted) (*messages.Pickle, bool) {
	tc, ok := q.FindTestCaseByTestStepStarted(stepStarted)
	if !ok {
		return nil, false
	}
	return q.repo.Pickle(tc.PickleID)
}

// FindPickleStepBy resolves the pickle step a test step executes. Hook
// steps have none.
func (q *Query) FindPickleStepBy(step *messages.TestStep) (*messages.PickleStep, bool) {
	if step == nil || step.PickleStepID == "" {
		return nil, false
	}
	return q.repo.PickleStep(step.PickleStepID)
}

// FindStepBy resolves the document step a pickle step was compiled from,
// the first of its ast node ids.
func (q *Query) FindStepBy(pickleStep *messages.PickleStep) (*messages.Step, bool) {
	if pickleStep == nil || len(pickleStep.AstNodeIDs) == 0 {
		return nil, false
	}
	return q.repo.Step(pickleStep.AstNodeIDs[0])
}

// FindHookBy resolves the hook a test step executes. Pickle steps have
// none.
func (q *Query) FindHookBy(step *messages.TestStep) (*messages.Hook, bool) {
	if step == nil || step.HookID == "" {
		return nil, false
	}
	return q.repo.Hook(step.HookID)
}

func (q *Query) FindHookByTestRunHook(started *messages.TestRunHookStarted) (*messages.Hook, bool) {
	if started == nil {
		return nil, false
	}
	return q.repo.Hook(started.HookID)
}

// FindStepDefinitionsBy returns every known step definition matched by the
// step. Unknown ids are skipped.
func (q *Query) FindStepDefinitionsBy(step *messages.TestStep) []*messages.StepDefinition {
	if step == nil {
		return nil
	}
	var out []*messages.StepDefinition
	for _, id := range step.StepDefinitionIDs {
		if def, ok := q.repo.StepDefinition(id); ok {
			out = append(out, def)
		}
	}
	return out
}

// FindUnambiguousStepDefinitionBy returns the step definition when the step
// matched exactly one.
func (q *Query) FindUnambiguousStepDefinitionBy(step *messages.TestStep) (*messages.StepDefinition, bool) {
	if step == nil || len(step.StepDefinitionIDs) != 1 {
		return nil, false
	}
	return q.repo.StepDefinition(step.StepDefinitionIDs[0])
}

func (q *Query) FindSuggestionsBy(pickleStep *messages.PickleStep) []*messages.Suggestion {
	if pickleStep == nil {
		return nil
	}
	return q.repo.Suggestions(pickleStep.ID)
}

// FindSuggestionsByPickle collects suggestions for every step of the
// pickle, in step order.
func (q *Query) FindSuggestionsByPickle(pickle *messages.Pickle) []*messages.Suggestion {
	if pickle == nil {
		return nil
	}
	var out []*messages.Suggestion
	for i := range pickle.Steps {
		out = append(out, q.repo.Suggestions(pickle.Steps[i].ID)...)
	}
	return out
}

func (q *Query) FindTestStepBy(stepStarted *messages.TestStepStarted) (*messages.TestStep, bool) {
	if stepStarted == nil {
		return nil, false
	}
	return q.repo.TestStep(stepStarted.TestStepID)
}

func (q *Query) FindTestStepByFinished(stepFinished *messages.TestStepFinished) (*messages.TestStep, bool) {
	if stepFinished == nil {
		return nil, false
	}
	return q.repo.TestStep(stepFinished.TestStepID)
}

func (q *Query) FindTestStepsStartedBy(started *messages.TestCaseStarted) []*messages.TestStepStarted {
	if started == nil {
		return nil
	}
	return q.repo.TestStepsStarted(started.ID)
}

func (q *Query) FindTestStepsFinishedBy(started *messages.TestCaseStarted) []*messages.TestStepFinished {
	if started == nil {
		return nil
	}
	return q.repo.TestStepsFinished(started.ID)
}

// StepOutcome pairs a finished step with the test step it executed.
type StepOutcome struct {
	Finished *messages.TestStepFinished
	Step     *messages.TestStep
}

// FindTestStepFinishedAndTestStepBy pairs every finished step of the
// attempt with its test step, skipping steps whose test case is unknown.
func (q *Query) FindTestStepFinishedAndTestStepBy(started *messages.TestCaseStarted) []StepOutcome {
	var out []StepOutcome
	for _, finished := range q.FindTestStepsFinishedBy(started) {
		if step, ok := q.repo.TestStep(finished.TestStepID); ok {
			out = append(out, StepOutcome{Finished: finished, Step: step})
		}
	}
	return out
}

// FindAttachmentsBy returns the attachments made by one step of an attempt.
func (q *Query) FindAttachmentsBy(stepFinished *messages.TestStepFinished) []*messages.Attachment {
	if stepFinished == nil {
		return nil
	}
	var out []*messages.Attachment
	for _, a := range q.repo.Attachments(stepFinished.TestCaseStartedID) {
		if a.TestStepID != "" && a.TestStepID == stepFinished.TestStepID {
			out = append(out, a)
		}
	}
	return out
}

// FindAttachmentsByTestRunHook returns the attachments made by a run-level
// hook.
func (q *Query) FindAttachmentsByTestRunHook(finished *messages.TestRunHookFinished) []*messages.Attachment {
	if finished == nil {
		return nil
	}
	return q.repo.TestRunHookAttachments(finished.TestRunHookStartedID)
}

func (q *Query) FindTestRunHookStartedBy(finished *messages.TestRunHookFinished) (*messages.TestRunHookStarted, bool) {
	if finished == nil {
		return nil, false
	}
	return q.repo.TestRunHookStarted(finished.TestRunHookStartedID)
}

func (q *Query) FindTestRunHookFinishedBy(started *messages.TestRunHookStarted) (*messages.TestRunHookFinished, bool) {
	if started == nil {
		return nil, false
	}
	return q.repo.TestRunHookFinished(started.ID)
}
