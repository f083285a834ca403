package testing

import (
	"fmt"

	"github.com/teranos/runquery/messages"
)

// Envelopes wraps plain messages into envelopes.
func Envelopes(msgs ...any) []*messages.Envelope {
	out := make([]*messages.Envelope, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Wrap(m))
	}
	return out
}

// Wrap puts one message into an envelope. It panics on unsupported types.
func Wrap(m any) *messages.Envelope {
	switch v := m.(type) {
	case *messages.Envelope:
		return v
	case *messages.Attachment:
		return &messages.Envelope{Attachment: v}
	case *messages.GherkinDocument:
		return &messages.Envelope{GherkinDocument: v}
	case *messages.Hook:
		return &messages.Envelope{Hook: v}
	case *messages.Meta:
		return &messages.Envelope{Meta: v}
	case *messages.Pickle:
		return &messages.Envelope{Pickle: v}
	case *messages.StepDefinition:
		return &messages.Envelope{StepDefinition: v}
	case *messages.Suggestion:
		return &messages.Envelope{Suggestion: v}
	case *messages.TestCase:
		return &messages.Envelope{TestCase: v}
	case *messages.TestCaseStarted:
		return &messages.Envelope{TestCaseStarted: v}
	case *messages.TestCaseFinished:
		return &messages.Envelope{TestCaseFinished: v}
	case *messages.TestStepStarted:
		return &messages.Envelope{TestStepStarted: v}
	case *messages.TestStepFinished:
		return &messages.Envelope{TestStepFinished: v}
	case *messages.TestRunStarted:
		return &messages.Envelope{TestRunStarted: v}
	case *messages.TestRunFinished:
		return &messages.Envelope{TestRunFinished: v}
	case *messages.TestRunHookStarted:
		return &messages.Envelope{TestRunHookStarted: v}
	case *messages.TestRunHookFinished:
		return &messages.Envelope{TestRunHookFinished: v}
	case *messages.UndefinedParameterType:
		return &messages.Envelope{UndefinedParameterType: v}
	default:
		panic(fmt.Sprintf("cannot wrap %T", m))
	}
}

// TestCaseFor builds a test case with one test step per pickle step. Test
// step ids are "<test case id>-ts-<n>", bound to step definition "sd-1".
func TestCaseFor(id string, pickle *messages.Pickle) *messages.TestCase {
	tc := &messages.TestCase{ID: id, PickleID: pickle.ID}
	for i, ps := range pickle.Steps {
		tc.TestSteps = append(tc.TestSteps, messages.TestStep{
			ID:                fmt.Sprintf("%s-ts-%d", id, i+1),
			PickleStepID:      ps.ID,
			StepDefinitionIDs: []string{"sd-1"},
		})
	}
	return tc
}

// Attempt describes one execution of a test case.
type Attempt struct {
	ID            string
	TestCase      *messages.TestCase
	Start         int64 // seconds since epoch
	Statuses      []messages.TestStepResultStatus
	WillBeRetried bool
	Unfinished    bool
}

// Envelopes returns the attempt's lifecycle: started, one started/finished
// pair per status (bound to the test case's steps in order, falling back
// to synthetic ids), then finished unless Unfinished. Each step takes one
// second.
func (a Attempt) Envelopes() []*messages.Envelope {
	ts := func(offset int64) messages.Timestamp {
		return messages.Timestamp{Seconds: a.Start + offset}
	}

	out := []*messages.Envelope{{TestCaseStarted: &messages.TestCaseStarted{
		ID:         a.ID,
		TestCaseID: a.TestCase.ID,
		Timestamp:  ts(0),
	}}}
	for i, status := range a.Statuses {
		stepID := fmt.Sprintf("%s-ts-%d", a.TestCase.ID, i+1)
		if i < len(a.TestCase.TestSteps) {
			stepID = a.TestCase.TestSteps[i].ID
		}
		out = append(out,
			&messages.Envelope{TestStepStarted: &messages.TestStepStarted{
				TestCaseStartedID: a.ID,
				TestStepID:        stepID,
				Timestamp:         ts(int64(i)),
			}},
			&messages.Envelope{TestStepFinished: &messages.TestStepFinished{
				TestCaseStartedID: a.ID,
				TestStepID:        stepID,
				TestStepResult:    messages.TestStepResult{Status: status, Duration: messages.Duration{Seconds: 1}},
				Timestamp:         ts(int64(i) + 1),
			}},
		)
	}
	if !a.Unfinished {
		out = append(out, &messages.Envelope{TestCaseFinished: &messages.TestCaseFinished{
			TestCaseStartedID: a.ID,
			Timestamp:         ts(int64(len(a.Statuses))),
			WillBeRetried:     a.WillBeRetried,
		}})
	}
	return out
}

// Interleave merges sequences round-robin, preserving the order within
// each sequence.
func Interleave(seqs ...[]*messages.Envelope) []*messages.Envelope {
	var out []*messages.Envelope
	for i := 0; ; i++ {
		progressed := false
		for _, seq := range seqs {
			if i < len(seq) {
				out = append(out, seq[i])
				progressed = true
			}
		}
		if !progressed {
			return out
		}
	}
}
