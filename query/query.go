// Package query answers derived questions over a store.Repository: most
// severe results, attempt listings that account for retries, durations,
// lineages and display names.
//
// Every method is read-only and safe to call while the repository is
// still being updated. Missing data is reported as an absent result,
// never as an error; only lineage and name lookups of document nodes the
// repository never indexed return errors.
package query

import (
	"go.uber.org/zap"

	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/store"
)

type Query struct {
	repo    *store.Repository
	ranking messages.SeverityRanking
	log     *zap.SugaredLogger
}

type Option func(*Query)

// WithSeverityRanking replaces the default status ranking.
func WithSeverityRanking(r messages.SeverityRanking) Option {
	return func(q *Query) { q.ranking = r }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(q *Query) { q.log = log }
}

func New(repo *store.Repository, opts ...Option) *Query {
	q := &Query{
		repo:    repo,
		ranking: messages.DefaultSeverityRanking(),
		log:     logger.ComponentLogger("query"),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Repository returns the underlying store.
func (q *Query) Repository() *store.Repository { return q.repo }

// SeverityRanking returns the ranking used to pick most severe results.
func (q *Query) SeverityRanking() messages.SeverityRanking { return q.ranking }

func (q *Query) willBeRetried(started *messages.TestCaseStarted) bool {
	finished, ok := q.repo.TestCaseFinished(started.ID)
	return ok && finished.WillBeRetried
}

// CountTestCasesStarted counts attempts that will not be retried.
func (q *Query) CountTestCasesStarted() int {
	return len(q.FindAllTestCaseStarted())
}

// FindAllTestCaseStarted returns attempts in arrival order, leaving out
// every attempt whose finish announced a retry. A retry is a separate
// attempt with its own id; nothing is merged.
func (q *Query) FindAllTestCaseStarted() []*messages.TestCaseStarted {
	all := q.repo.TestCasesStarted()
	out := make([]*messages.TestCaseStarted, 0, len(all))
	for _, started := range all {
		if !q.willBeRetried(started) {
			out = append(out, started)
		}
	}
	return out
}

// FindAllTestCaseFinished returns finishes in arrival order, leaving out
// those that announced a retry.
func (q *Query) FindAllTestCaseFinished() []*messages.TestCaseFinished {
	all := q.repo.TestCasesFinished()
	out := make([]*messages.TestCaseFinished, 0, len(all))
	for _, finished := range all {
		if !finished.WillBeRetried {
			out = append(out, finished)
		}
	}
	return out
}

func (q *Query) FindAllPickles() []*messages.Pickle { return q.repo.Pickles() }

func (q *Query) FindAllPickleSteps() []*messages.PickleStep { return q.repo.PickleSteps() }

func (q *Query) FindAllStepDefinitions() []*messages.StepDefinition {
	return q.repo.StepDefinitions()
}

func (q *Query) FindAllTestCases() []*messages.TestCase { return q.repo.TestCases() }

func (q *Query) FindAllTestSteps() []*messages.TestStep { return q.repo.TestSteps() }

func (q *Query) FindAllTestStepStarted() []*messages.TestStepStarted {
	return q.repo.AllTestStepsStarted()
}

func (q *Query) FindAllTestStepFinished() []*messages.TestStepFinished {
	return q.repo.AllTestStepsFinished()
}

func (q *Query) FindAllTestRunHookStarted() []*messages.TestRunHookStarted {
	return q.repo.TestRunHooksStarted()
}

func (q *Query) FindAllTestRunHookFinished() []*messages.TestRunHookFinished {
	return q.repo.TestRunHooksFinished()
}

func (q *Query) FindAllUndefinedParameterTypes() []*messages.UndefinedParameterType {
	return q.repo.UndefinedParameterTypes()
}

func (q *Query) FindMeta() (*messages.Meta, bool) { return q.repo.Meta() }

func (q *Query) FindTestRunStarted() (*messages.TestRunStarted, bool) {
	return q.repo.TestRunStarted()
}

func (q *Query) FindTestRunFinished() (*messages.TestRunFinished, bool) {
	return q.repo.TestRunFinished()
}
