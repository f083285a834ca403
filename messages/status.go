package messages

import (
	"strings"

	"github.com/teranos/runquery/errors"
)

// TestStepResultStatus is the outcome of one executed step.
type TestStepResultStatus string

const (
	StatusUnknown   TestStepResultStatus = "UNKNOWN"
	StatusPassed    TestStepResultStatus = "PASSED"
	StatusSkipped   TestStepResultStatus = "SKIPPED"
	StatusPending   TestStepResultStatus = "PENDING"
	StatusUndefined TestStepResultStatus = "UNDEFINED"
	StatusAmbiguous TestStepResultStatus = "AMBIGUOUS"
	StatusFailed    TestStepResultStatus = "FAILED"
)

// Statuses returns every status in schema enumeration order. Severity is
// a separate concern, see SeverityRanking.
func Statuses() []TestStepResultStatus {
	return []TestStepResultStatus{
		StatusUnknown,
		StatusPassed,
		StatusSkipped,
		StatusPending,
		StatusUndefined,
		StatusAmbiguous,
		StatusFailed,
	}
}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (TestStepResultStatus, error) {
	candidate := TestStepResultStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range Statuses() {
		if status == candidate {
			return status, nil
		}
	}
	return "", errors.NewInvalidRequestError("unknown test step result status %q", s)
}

// SeverityRanking is an explicit total order over statuses, least severe
// first. Statuses missing from the order rank below every listed status.
// The zero value uses the default order.
type SeverityRanking struct {
	order []TestStepResultStatus
	rank  map[TestStepResultStatus]int
}

// DefaultSeverityOrder is the order published with the message schema.
var DefaultSeverityOrder = []TestStepResultStatus{
	StatusUnknown,
	StatusPassed,
	StatusSkipped,
	StatusPending,
	StatusUndefined,
	StatusAmbiguous,
	StatusFailed,
}

var defaultRanking = mustRanking(DefaultSeverityOrder...)

func mustRanking(order ...TestStepResultStatus) SeverityRanking {
	r, err := NewSeverityRanking(order...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultSeverityRanking returns the ranking for DefaultSeverityOrder.
func DefaultSeverityRanking() SeverityRanking {
	return defaultRanking
}

// NewSeverityRanking builds a ranking from statuses listed least severe
// first. Empty and duplicate entries are rejected.
func NewSeverityRanking(order ...TestStepResultStatus) (SeverityRanking, error) {
	if len(order) == 0 {
		return SeverityRanking{}, errors.NewInvalidRequestError("severity order is empty")
	}
	rank := make(map[TestStepResultStatus]int, len(order))
	for i, status := range order {
		if status == "" {
			return SeverityRanking{}, errors.NewInvalidRequestError("severity order has an empty status at position %d", i)
		}
		if _, dup := rank[status]; dup {
			return SeverityRanking{}, errors.NewInvalidRequestError("status %s listed twice in severity order", status)
		}
		rank[status] = i
	}
	copied := make([]TestStepResultStatus, len(order))
	copy(copied, order)
	return SeverityRanking{order: copied, rank: rank}, nil
}

func (r SeverityRanking) effective() SeverityRanking {
	if r.rank == nil {
		return defaultRanking
	}
	return r
}

// Order returns the statuses least severe first.
func (r SeverityRanking) Order() []TestStepResultStatus {
	order := r.effective().order
	out := make([]TestStepResultStatus, len(order))
	copy(out, order)
	return out
}

// Rank returns the position of status in the order, or -1 if unlisted.
func (r SeverityRanking) Rank(status TestStepResultStatus) int {
	if i, ok := r.effective().rank[status]; ok {
		return i
	}
	return -1
}

// Compare returns -1, 0 or 1 as a is less, equally or more severe than b.
func (r SeverityRanking) Compare(a, b TestStepResultStatus) int {
	ra, rb := r.Rank(a), r.Rank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// MostSevere returns the result with the most severe status. Ties keep the
// earliest result. Reports false for no results.
func (r SeverityRanking) MostSevere(results ...TestStepResult) (TestStepResult, bool) {
	if len(results) == 0 {
		return TestStepResult{}, false
	}
	worst := results[0]
	for _, result := range results[1:] {
		if r.Compare(result.Status, worst.Status) > 0 {
			worst = result
		}
	}
	return worst, true
}
