package query

import (
	"sort"

	"github.com/teranos/runquery/messages"
)

type keyed[M any, K any] struct {
	message M
	key     K
	hasKey  bool
}

// sortByKey sorts stably by key; messages without a key go last in their
// original order.
func sortByKey[M any, K any](in []M, key func(M) (K, bool), compare func(a, b K) int) []M {
	items := make([]keyed[M, K], len(in))
	for i, m := range in {
		k, ok := key(m)
		items[i] = keyed[M, K]{message: m, key: k, hasKey: ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.hasKey && b.hasKey:
			return compare(a.key, b.key) < 0
		default:
			return a.hasKey && !b.hasKey
		}
	})
	out := make([]M, len(items))
	for i, item := range items {
		out[i] = item.message
	}
	return out
}

// FindAllTestCaseStartedOrderBy is FindAllTestCaseStarted sorted by a
// derived key. Attempts without a key sort last.
//
//	byName := query.FindAllTestCaseStartedOrderBy(q,
//	    func(q *query.Query, s *messages.TestCaseStarted) (string, bool) {
//	        p, ok := q.FindPickleBy(s)
//	        if !ok {
//	            return "", false
//	        }
//	        return p.Name, true
//	    },
//	    strings.Compare)
func FindAllTestCaseStartedOrderBy[K any](
	q *Query,
	key func(*Query, *messages.TestCaseStarted) (K, bool),
	compare func(a, b K) int,
) []*messages.TestCaseStarted {
	return sortByKey(q.FindAllTestCaseStarted(), func(s *messages.TestCaseStarted) (K, bool) {
		return key(q, s)
	}, compare)
}

// FindAllTestCaseFinishedOrderBy is FindAllTestCaseFinished sorted by a
// derived key. Finishes without a key sort last.
func FindAllTestCaseFinishedOrderBy[K any](
	q *Query,
	key func(*Query, *messages.TestCaseFinished) (K, bool),
	compare func(a, b K) int,
) []*messages.TestCaseFinished {
	return sortByKey(q.FindAllTestCaseFinished(), func(f *messages.TestCaseFinished) (K, bool) {
		return key(q, f)
	}, compare)
}

// ByTimestamp compares timestamps, earliest first.
func ByTimestamp(a, b messages.Timestamp) int {
	return a.Compare(b)
}
