package query

import (
	"time"

	"github.com/teranos/runquery/messages"
)

// FindTestCaseDurationBy is the wall-clock time between the attempt's start
// and finish. Absent until the attempt finishes.
func (q *Query) FindTestCaseDurationBy(started *messages.TestCaseStarted) (time.Duration, bool) {
	finished, ok := q.FindTestCaseFinishedBy(started)
	if !ok {
		return 0, false
	}
	return messages.Between(started.Timestamp, finished.Timestamp), true
}

// FindTestRunDuration is the wall-clock time between run start and finish.
func (q *Query) FindTestRunDuration() (time.Duration, bool) {
	started, ok := q.repo.TestRunStarted()
	if !ok {
		return 0, false
	}
	finished, ok := q.repo.TestRunFinished()
	if !ok {
		return 0, false
	}
	return messages.Between(started.Timestamp, finished.Timestamp), true
}
