package messages

type TestCase struct {
	ID               string     `json:"id"`
	PickleID         string     `json:"pickleId"`
	TestSteps        []TestStep `json:"testSteps"`
	TestRunStartedID string     `json:"testRunStartedId,omitempty"`
}

// TestStep is either a hook step (HookID set) or a pickle step
// (PickleStepID set).
type TestStep struct {
	HookID            string   `json:"hookId,omitempty"`
	ID                string   `json:"id"`
	PickleStepID      string   `json:"pickleStepId,omitempty"`
	StepDefinitionIDs []string `json:"stepDefinitionIds,omitempty"`
}

// TestCaseStarted opens one attempt. ID is unique per attempt, not per
// test case.
type TestCaseStarted struct {
	Attempt    int64     `json:"attempt"`
	ID         string    `json:"id"`
	TestCaseID string    `json:"testCaseId"`
	WorkerID   string    `json:"workerId,omitempty"`
	Timestamp  Timestamp `json:"timestamp"`
}

type TestCaseFinished struct {
	TestCaseStartedID string    `json:"testCaseStartedId"`
	Timestamp         Timestamp `json:"timestamp"`
	WillBeRetried     bool      `json:"willBeRetried"`
}

type TestStepStarted struct {
	TestCaseStartedID string    `json:"testCaseStartedId"`
	TestStepID        string    `json:"testStepId"`
	Timestamp         Timestamp `json:"timestamp"`
}

type TestStepFinished struct {
	TestCaseStartedID string         `json:"testCaseStartedId"`
	TestStepID        string         `json:"testStepId"`
	TestStepResult    TestStepResult `json:"testStepResult"`
	Timestamp         Timestamp      `json:"timestamp"`
}

type TestStepResult struct {
	Duration  Duration             `json:"duration"`
	Message   string               `json:"message,omitempty"`
	Status    TestStepResultStatus `json:"status"`
	Exception *Exception           `json:"exception,omitempty"`
}

type Exception struct {
	Type       string `json:"type"`
	Message    string `json:"message,omitempty"`
	StackTrace string `json:"stackTrace,omitempty"`
}

type TestRunStarted struct {
	ID        string    `json:"id,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

type TestRunFinished struct {
	Message          string     `json:"message,omitempty"`
	Success          bool       `json:"success"`
	Timestamp        Timestamp  `json:"timestamp"`
	Exception        *Exception `json:"exception,omitempty"`
	TestRunStartedID string     `json:"testRunStartedId,omitempty"`
}

// TestRunHookStarted marks a run-level hook (BeforeAll/AfterAll) starting.
type TestRunHookStarted struct {
	ID               string    `json:"id"`
	TestRunStartedID string    `json:"testRunStartedId"`
	HookID           string    `json:"hookId"`
	Timestamp        Timestamp `json:"timestamp"`
}

type TestRunHookFinished struct {
	TestRunHookStartedID string         `json:"testRunHookStartedId"`
	Result               TestStepResult `json:"result"`
	Timestamp            Timestamp      `json:"timestamp"`
}
