package messages

type SourceReference struct {
	URI      string    `json:"uri,omitempty"`
	Location *Location `json:"location,omitempty"`
}

type Hook struct {
	ID              string          `json:"id"`
	Name            string          `json:"name,omitempty"`
	SourceReference SourceReference `json:"sourceReference"`
	TagExpression   string          `json:"tagExpression,omitempty"`
	Type            string          `json:"type,omitempty"`
}

type StepDefinition struct {
	ID              string                `json:"id"`
	Pattern         StepDefinitionPattern `json:"pattern"`
	SourceReference SourceReference       `json:"sourceReference"`
}

type StepDefinitionPattern struct {
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Suggestion carries snippets for an undefined pickle step.
type Suggestion struct {
	ID           string    `json:"id"`
	PickleStepID string    `json:"pickleStepId"`
	Snippets     []Snippet `json:"snippets"`
}

type Snippet struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Attachment belongs to an attempt (TestCaseStartedID, optionally
// TestStepID) or to a run-level hook (TestRunHookStartedID).
type Attachment struct {
	Body                 string     `json:"body"`
	ContentEncoding      string     `json:"contentEncoding"`
	FileName             string     `json:"fileName,omitempty"`
	MediaType            string     `json:"mediaType"`
	TestCaseStartedID    string     `json:"testCaseStartedId,omitempty"`
	TestStepID           string     `json:"testStepId,omitempty"`
	TestRunHookStartedID string     `json:"testRunHookStartedId,omitempty"`
	URL                  string     `json:"url,omitempty"`
	Timestamp            *Timestamp `json:"timestamp,omitempty"`
}

type Meta struct {
	ProtocolVersion string  `json:"protocolVersion"`
	Implementation  Product `json:"implementation"`
	Runtime         Product `json:"runtime"`
	OS              Product `json:"os"`
	CPU             Product `json:"cpu"`
	CI              *CI     `json:"ci,omitempty"`
}

type Product struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type CI struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type UndefinedParameterType struct {
	Expression string `json:"expression"`
	Name       string `json:"name"`
}
