package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeKind(t *testing.T) {
	tests := []struct {
		name string
		env  *Envelope
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"empty", &Envelope{}, KindUnknown},
		{"pickle", &Envelope{Pickle: &Pickle{}}, KindPickle},
		{"meta", &Envelope{Meta: &Meta{}}, KindMeta},
		{"test case finished", &Envelope{TestCaseFinished: &TestCaseFinished{}}, KindTestCaseFinished},
		{"run hook", &Envelope{TestRunHookStarted: &TestRunHookStarted{}}, KindTestRunHookStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.env.Kind())
		})
	}
}

func TestDecodeWireEnvelope(t *testing.T) {
	line := `{"testCaseFinished":{"testCaseStartedId":"tcs-1","timestamp":{"seconds":12,"nanos":3},"willBeRetried":true}}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(line), &env))

	assert.Equal(t, KindTestCaseFinished, env.Kind())
	assert.Equal(t, "tcs-1", env.TestCaseFinished.TestCaseStartedID)
	assert.True(t, env.TestCaseFinished.WillBeRetried)
	assert.Equal(t, Timestamp{Seconds: 12, Nanos: 3}, env.TestCaseFinished.Timestamp)
}

func TestDecodeGherkinDocument(t *testing.T) {
	line := `{"gherkinDocument":{"uri":"a.feature","feature":{"location":{"line":1,"column":1},"language":"en","keyword":"Feature","name":"F","children":[{"rule":{"id":"r1","name":"R","keyword":"Rule","location":{"line":2},"children":[{"scenario":{"id":"s1","name":"S","keyword":"Scenario","location":{"line":3}}}]}}]}}}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(line), &env))

	doc := env.GherkinDocument
	require.NotNil(t, doc.Feature)
	require.Len(t, doc.Feature.Children, 1)
	rule := doc.Feature.Children[0].Rule
	require.NotNil(t, rule)
	assert.Equal(t, "r1", rule.ID)
	require.NotNil(t, rule.Children[0].Scenario)
	assert.Equal(t, int64(3), rule.Children[0].Scenario.Location.Line)
	require.NotNil(t, doc.Feature.Location.Column)
}

func TestPickleAnchor(t *testing.T) {
	p := &Pickle{AstNodeIDs: []string{"scenario", "row"}}
	anchor, ok := p.Anchor()
	require.True(t, ok)
	assert.Equal(t, "row", anchor)

	_, ok = (&Pickle{}).Anchor()
	assert.False(t, ok)

	var nilPickle *Pickle
	_, ok = nilPickle.Anchor()
	assert.False(t, ok)
}
