package query

import (
	"cmp"
	"fmt"
	"slices"

	"queryexplorer/app/interfaces"
)

// SortedView returns rows ordered by spec. With no key the input is returned
// unchanged. Otherwise a new slice is sorted stably, so equal keys keep
// their original relative order in both directions. The input is never
// modified: it may be a cached sequence shared with other views.
//
// SortedView panics if spec names a column that does not exist.
func SortedView(rows RowSequence, spec SortSpec) RowSequence {
	if spec.Key == interfaces.SortKeyNone {
		return rows
	}
	compare := comparatorFor(spec.Key)
	if spec.Direction == interfaces.SortDesc {
		asc := compare
		compare = func(a, b Row) int { return asc(b, a) }
	}

	// Make a copy of the rows slice to avoid mutating cached data
	view := make(RowSequence, len(rows))
	copy(view, rows)
	slices.SortStableFunc(view, compare)
	return view
}

// comparatorFor returns the ascending comparator for a column:
// numeric columns compare as integers, text columns byte-wise.
func comparatorFor(key SortKey) func(a, b Row) int {
	switch key {
	case interfaces.SortKeyID:
		return func(a, b Row) int { return cmp.Compare(a.ID, b.ID) }
	case interfaces.SortKeyAge:
		return func(a, b Row) int { return cmp.Compare(a.Age, b.Age) }
	case interfaces.SortKeyName:
		return func(a, b Row) int { return cmp.Compare(a.Name, b.Name) }
	case interfaces.SortKeyEmail:
		return func(a, b Row) int { return cmp.Compare(a.Email, b.Email) }
	}
	panic(fmt.Sprintf("query: sort on unknown column %q", string(key)))
}
