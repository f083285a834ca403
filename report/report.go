// Package report turns query results into the views printed by the CLI.
package report

import (
	"fmt"
	"time"

	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/naming"
	"github.com/teranos/runquery/query"
	"github.com/teranos/runquery/store"
)

// UnresolvedFeature names the group of attempts whose document is unknown.
const UnresolvedFeature = "(unresolved)"

type Summary struct {
	Implementation string          `json:"implementation,omitempty" yaml:"implementation,omitempty" toml:"implementation,omitempty"`
	RunFinished    bool            `json:"run_finished" yaml:"run_finished" toml:"run_finished"`
	Success        bool            `json:"success" yaml:"success" toml:"success"`
	DurationMS     int64           `json:"duration_ms" yaml:"duration_ms" toml:"duration_ms"`
	Stats          store.Stats     `json:"stats" yaml:"stats" toml:"stats"`
	Statuses       query.Histogram `json:"statuses" yaml:"statuses" toml:"statuses"`
	Features       []Feature       `json:"features" yaml:"features" toml:"features"`
}

type Feature struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios" toml:"scenarios"`
}

// Scenario is one attempt that will not be retried.
type Scenario struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
	Status     string `json:"status" yaml:"status" toml:"status"`
	Attempt    int64  `json:"attempt" yaml:"attempt" toml:"attempt"`
	Finished   bool   `json:"finished" yaml:"finished" toml:"finished"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms" toml:"duration_ms"`
}

// Build summarizes everything the query can see right now. It is safe to
// call while the store is still receiving messages.
func Build(q *query.Query, strategy naming.Strategy) Summary {
	s := Summary{
		Stats:    q.Repository().Stats(),
		Statuses: q.CountMostSevereTestStepResultStatus(),
	}
	if meta, ok := q.FindMeta(); ok && meta.Implementation.Name != "" {
		s.Implementation = meta.Implementation.Name
		if meta.Implementation.Version != "" {
			s.Implementation += " " + meta.Implementation.Version
		}
	}
	if finished, ok := q.FindTestRunFinished(); ok {
		s.RunFinished = true
		s.Success = finished.Success
	}
	if d, ok := q.FindTestRunDuration(); ok {
		s.DurationMS = d.Milliseconds()
	}

	for _, group := range q.FindAllTestCaseStartedGroupedByFeature() {
		f := Feature{Name: UnresolvedFeature}
		if group.Feature != nil {
			f.Name = group.Feature.Name
		}
		for _, started := range group.Starts {
			f.Scenarios = append(f.Scenarios, scenario(q, strategy, started))
		}
		s.Features = append(s.Features, f)
	}
	return s
}

func scenario(q *query.Query, strategy naming.Strategy, started *messages.TestCaseStarted) Scenario {
	sc := Scenario{
		Name:    started.ID,
		Status:  string(messages.StatusUnknown),
		Attempt: started.Attempt,
	}
	if pickle, ok := q.FindPickleBy(started); ok {
		sc.Name = q.FindNameOfPickle(pickle, strategy)
		sc.Location = location(q, pickle)
	}
	if result, ok := q.FindMostSevereTestStepResultBy(started); ok {
		sc.Status = string(result.Status)
	}
	if d, ok := q.FindTestCaseDurationBy(started); ok {
		sc.Finished = true
		sc.DurationMS = d.Milliseconds()
	}
	return sc
}

func location(q *query.Query, pickle *messages.Pickle) string {
	if loc, ok := q.FindLocationOf(pickle); ok {
		return fmt.Sprintf("%s:%d", pickle.URI, loc.Line)
	}
	if pickle.Location != nil {
		return fmt.Sprintf("%s:%d", pickle.URI, pickle.Location.Line)
	}
	return pickle.URI
}

// Name is a pickle's display name under a naming strategy.
type Name struct {
	PickleID string `json:"pickle_id" yaml:"pickle_id" toml:"pickle_id"`
	Location string `json:"location" yaml:"location" toml:"location"`
	Name     string `json:"name" yaml:"name" toml:"name"`
}

// Names lists every pickle in arrival order.
func Names(q *query.Query, strategy naming.Strategy) []Name {
	pickles := q.FindAllPickles()
	out := make([]Name, 0, len(pickles))
	for _, p := range pickles {
		out = append(out, Name{
			PickleID: p.ID,
			Location: location(q, p),
			Name:     q.FindNameOfPickle(p, strategy),
		})
	}
	return out
}

// Duration renders milliseconds the way the text views print them.
func Duration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Millisecond).String()
}
