package query

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
)

// FindMostSevereTestStepResultBy returns the most severe result recorded
// so far for the attempt.
func (q *Query) FindMostSevereTestStepResultBy(started *messages.TestCaseStarted) (messages.TestStepResult, bool) {
	if started == nil {
		return messages.TestStepResult{}, false
	}
	return q.mostSevere(started.ID)
}

// FindMostSevereTestStepResultByFinished is FindMostSevereTestStepResultBy
// for the attempt a finish belongs to.
func (q *Query) FindMostSevereTestStepResultByFinished(finished *messages.TestCaseFinished) (messages.TestStepResult, bool) {
	if finished == nil {
		return messages.TestStepResult{}, false
	}
	return q.mostSevere(finished.TestCaseStartedID)
}

func (q *Query) mostSevere(testCaseStartedID string) (messages.TestStepResult, bool) {
	finished := q.repo.TestStepsFinished(testCaseStartedID)
	results := make([]messages.TestStepResult, len(finished))
	for i, f := range finished {
		results[i] = f.TestStepResult
	}
	return q.ranking.MostSevere(results...)
}

// StatusCount is one bucket of a Histogram.
type StatusCount struct {
	Status messages.TestStepResultStatus `json:"status" yaml:"status" toml:"status"`
	Count  int                           `json:"count" yaml:"count" toml:"count"`
}

// Histogram counts attempts by most severe status. Every status of the
// enumeration has a bucket.
type Histogram []StatusCount

// Count returns the bucket for status, zero if absent.
func (h Histogram) Count(status messages.TestStepResultStatus) int {
	for _, b := range h {
		if b.Status == status {
			return b.Count
		}
	}
	return 0
}

// Total sums all buckets.
func (h Histogram) Total() int {
	total := 0
	for _, b := range h {
		total += b.Count
	}
	return total
}

// CountMostSevereTestStepResultStatus counts the most severe status of
// every attempt that will not be retried. Observed statuses come first in
// the order they were first seen; the rest follow with zero counts in
// enumeration order. Attempts without finished steps are not counted.
func (q *Query) CountMostSevereTestStepResultStatus() Histogram {
	counts := orderedmap.New[messages.TestStepResultStatus, int]()
	for _, started := range q.FindAllTestCaseStarted() {
		result, ok := q.mostSevere(started.ID)
		if !ok {
			continue
		}
		n, _ := counts.Get(result.Status)
		counts.Set(result.Status, n+1)
	}
	observed := counts.Len()
	for _, status := range messages.Statuses() {
		if _, ok := counts.Get(status); !ok {
			counts.Set(status, 0)
		}
	}

	out := make(Histogram, 0, counts.Len())
	for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, StatusCount{Status: pair.Key, Count: pair.Value})
	}
	q.log.Debugw("counted most severe statuses", logger.FieldCount, observed)
	return out
}
