// Package messages defines the typed events of a test run as they arrive on
// the wire: document structure, compiled pickles, and the test case and test
// step lifecycle. JSON field names follow the camelCase wire schema.
package messages

// Kind names which message an Envelope carries.
type Kind string

const (
	KindUnknown                Kind = ""
	KindAttachment             Kind = "attachment"
	KindGherkinDocument        Kind = "gherkinDocument"
	KindHook                   Kind = "hook"
	KindMeta                   Kind = "meta"
	KindParameterType          Kind = "parameterType"
	KindParseError             Kind = "parseError"
	KindPickle                 Kind = "pickle"
	KindSource                 Kind = "source"
	KindStepDefinition         Kind = "stepDefinition"
	KindSuggestion             Kind = "suggestion"
	KindTestCase               Kind = "testCase"
	KindTestCaseFinished       Kind = "testCaseFinished"
	KindTestCaseStarted        Kind = "testCaseStarted"
	KindTestRunFinished        Kind = "testRunFinished"
	KindTestRunHookFinished    Kind = "testRunHookFinished"
	KindTestRunHookStarted     Kind = "testRunHookStarted"
	KindTestRunStarted         Kind = "testRunStarted"
	KindTestStepFinished       Kind = "testStepFinished"
	KindTestStepStarted        Kind = "testStepStarted"
	KindUndefinedParameterType Kind = "undefinedParameterType"
)

// Envelope wraps exactly one message. Exactly one field is expected to be
// set; if several are, Kind reports the first in declaration order.
type Envelope struct {
	Attachment             *Attachment             `json:"attachment,omitempty"`
	GherkinDocument        *GherkinDocument        `json:"gherkinDocument,omitempty"`
	Hook                   *Hook                   `json:"hook,omitempty"`
	Meta                   *Meta                   `json:"meta,omitempty"`
	ParameterType          *ParameterType          `json:"parameterType,omitempty"`
	ParseError             *ParseError             `json:"parseError,omitempty"`
	Pickle                 *Pickle                 `json:"pickle,omitempty"`
	Source                 *Source                 `json:"source,omitempty"`
	StepDefinition         *StepDefinition         `json:"stepDefinition,omitempty"`
	Suggestion             *Suggestion             `json:"suggestion,omitempty"`
	TestCase               *TestCase               `json:"testCase,omitempty"`
	TestCaseFinished       *TestCaseFinished       `json:"testCaseFinished,omitempty"`
	TestCaseStarted        *TestCaseStarted        `json:"testCaseStarted,omitempty"`
	TestRunFinished        *TestRunFinished        `json:"testRunFinished,omitempty"`
	TestRunHookFinished    *TestRunHookFinished    `json:"testRunHookFinished,omitempty"`
	TestRunHookStarted     *TestRunHookStarted     `json:"testRunHookStarted,omitempty"`
	TestRunStarted         *TestRunStarted         `json:"testRunStarted,omitempty"`
	TestStepFinished       *TestStepFinished       `json:"testStepFinished,omitempty"`
	TestStepStarted        *TestStepStarted        `json:"testStepStarted,omitempty"`
	UndefinedParameterType *UndefinedParameterType `json:"undefinedParameterType,omitempty"`
}

// Kind reports which message the envelope carries.
func (e *Envelope) Kind() Kind {
	if e == nil {
		return KindUnknown
	}
	switch {
	case e.Attachment != nil:
		return KindAttachment
	case e.GherkinDocument != nil:
		return KindGherkinDocument
	case e.Hook != nil:
		return KindHook
	case e.Meta != nil:
		return KindMeta
	case e.ParameterType != nil:
		return KindParameterType
	case e.ParseError != nil:
		return KindParseError
	case e.Pickle != nil:
		return KindPickle
	case e.Source != nil:
		return KindSource
	case e.StepDefinition != nil:
		return KindStepDefinition
	case e.Suggestion != nil:
		return KindSuggestion
	case e.TestCase != nil:
		return KindTestCase
	case e.TestCaseFinished != nil:
		return KindTestCaseFinished
	case e.TestCaseStarted != nil:
		return KindTestCaseStarted
	case e.TestRunFinished != nil:
		return KindTestRunFinished
	case e.TestRunHookFinished != nil:
		return KindTestRunHookFinished
	case e.TestRunHookStarted != nil:
		return KindTestRunHookStarted
	case e.TestRunStarted != nil:
		return KindTestRunStarted
	case e.TestStepFinished != nil:
		return KindTestStepFinished
	case e.TestStepStarted != nil:
		return KindTestStepStarted
	case e.UndefinedParameterType != nil:
		return KindUndefinedParameterType
	default:
		return KindUnknown
	}
}

// Source is the raw text of a parsed file. Carried for completeness; the
// index does not retain it.
type Source struct {
	URI       string `json:"uri"`
	Data      string `json:"data"`
	MediaType string `json:"mediaType"`
}

// ParseError reports a document that failed to parse.
type ParseError struct {
	Source  SourceReference `json:"source"`
	Message string          `json:"message"`
}

// ParameterType is a custom parameter type registered with the runner.
type ParameterType struct {
	ID                              string   `json:"id"`
	Name                            string   `json:"name"`
	RegularExpressions              []string `json:"regularExpressions"`
	PreferForRegularExpressionMatch bool     `json:"preferForRegularExpressionMatch"`
	UseForSnippets                  bool     `json:"useForSnippets"`
}
