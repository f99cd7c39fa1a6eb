package history

import "slices"

// DefaultLimit is the number of query texts kept
const DefaultLimit = 10

// List is the most-recently-run distinct query texts, newest first.
// Texts are compared exactly; re-adding an existing text moves it to the
// front. List is not safe for concurrent use.
type List struct {
	limit   int
	entries []string
}

// New creates a history list holding at most limit entries
func New(limit int) *List {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &List{limit: limit, entries: make([]string, 0, limit)}
}

// Add records text as the most recent entry
func (l *List) Add(text string) {
	if i := slices.Index(l.entries, text); i >= 0 {
		l.entries = slices.Delete(l.entries, i, i+1)
	}
	l.entries = slices.Insert(l.entries, 0, text)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

// Entries returns a copy of the list, newest first
func (l *List) Entries() []string {
	return slices.Clone(l.entries)
}

// Len returns the number of entries
func (l *List) Len() int {
	return len(l.entries)
}

// Clear removes every entry
func (l *List) Clear() {
	l.entries = l.entries[:0]
}
