package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"queryexplorer/app/interfaces"
	"queryexplorer/app/query"

	"github.com/google/uuid"
)

// SetQueryText stores the ad-hoc query text typed by the user
func (a *App) SetQueryText(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queryText = text
}

// RunQuery runs the ad-hoc query text. It returns false when the text is
// blank or another run is still in flight. Cached texts complete before
// RunQuery returns; otherwise the result arrives with a query:completed or
// query:failed event.
func (a *App) RunQuery() (bool, error) {
	_, accepted := a.runQuery()
	return accepted, nil
}

// runQuery starts a run and returns a channel closed once it has finished
func (a *App) runQuery() (<-chan struct{}, bool) {
	a.mu.Lock()
	text := a.queryText
	if strings.TrimSpace(text) == "" {
		a.mu.Unlock()
		return nil, false
	}
	if a.loading {
		a.mu.Unlock()
		a.Log("debug", fmt.Sprintf("[QUERY_REJECTED] Run already in flight, ignoring %q", text))
		return nil, false
	}
	a.loading = true
	a.lastError = nil
	start := time.Now()

	if a.cacheEnabled {
		if rows, ok := a.queryCache.Get(text); ok {
			a.publishLocked(text, rows, time.Since(start), true)
			a.loading = false
			info := a.resultInfoLocked()
			a.mu.Unlock()

			a.emit("query:started", text)
			a.emit("query:completed", info)
			a.Log("info", fmt.Sprintf("[QUERY_RUN] %d rows from cache", info.RowCount))
			done := make(chan struct{})
			close(done)
			return done, true
		}
	}
	a.mu.Unlock()

	a.emit("query:started", text)
	a.Log("debug", fmt.Sprintf("[QUERY_RUN] Executing %q", text))

	done := make(chan struct{})
	go a.execute(text, start, done)
	return done, true
}

// execute runs text on the executor and publishes the outcome
func (a *App) execute(text string, start time.Time, done chan<- struct{}) {
	defer close(done)

	ctx, cancel := a.executionContext()
	defer cancel()
	rows, err := a.executor.Execute(ctx, text)
	elapsed := time.Since(start)

	a.mu.Lock()
	a.loading = false
	if err != nil {
		info := &ErrorInfo{Kind: query.KindOf(err), Query: text, Message: err.Error()}
		a.lastError = info
		a.mu.Unlock()

		a.Log("error", fmt.Sprintf("[QUERY_FAILED] %v", err))
		a.emit("query:failed", *info)
		return
	}
	if a.cacheEnabled {
		a.queryCache.Put(text, rows)
	}
	a.publishLocked(text, rows, elapsed, false)
	info := a.resultInfoLocked()
	a.mu.Unlock()

	a.Log("info", fmt.Sprintf("[QUERY_RUN] %d rows in %.1f ms", info.RowCount, *info.ExecutionTimeMs))
	a.emit("query:completed", info)
}

func (a *App) executionContext() (context.Context, context.CancelFunc) {
	parent := a.Ctx()
	if parent == nil {
		parent = context.Background()
	}
	if a.timeout > 0 {
		return context.WithTimeout(parent, a.timeout)
	}
	return context.WithCancel(parent)
}

// publishLocked makes rows the selected ad-hoc result. Caller holds a.mu.
func (a *App) publishLocked(text string, rows interfaces.RowSequence, elapsed time.Duration, fromCache bool) {
	a.history.Add(text)
	a.selectLocked(interfaces.Query{ID: interfaces.AdHocQueryID, Text: text, Rows: rows})
	ms := float64(elapsed.Microseconds()) / 1000
	a.executionMs = &ms
	a.fromCache = fromCache
}

// selectLocked replaces the selected query and rebuilds the view under the
// current sort. Caller holds a.mu.
func (a *App) selectLocked(q interfaces.Query) {
	a.selected = q
	a.resultID = uuid.New()
	a.fingerprint = query.Fingerprint(q.Rows)
	a.fromCache = false
	a.executionMs = nil
	a.rebuildViewLocked()
}

func (a *App) resultInfoLocked() ResultInfo {
	return ResultInfo{
		ResultID:        a.resultID.String(),
		QueryID:         a.selected.ID,
		Text:            a.selected.Text,
		RowCount:        len(a.selected.Rows),
		ExecutionTimeMs: a.executionMs,
		FromCache:       a.fromCache,
		Fingerprint:     a.fingerprint,
	}
}

// SelectPredefinedQuery shows one of the catalog queries. The ad-hoc text
// and the execution time are cleared.
func (a *App) SelectPredefinedQuery(id int) (ResultInfo, error) {
	q, err := a.catalog.Lookup(id)
	if err != nil {
		return ResultInfo{}, err
	}

	a.mu.Lock()
	a.queryText = ""
	a.lastError = nil
	a.selectLocked(q)
	info := a.resultInfoLocked()
	a.mu.Unlock()

	a.Log("debug", fmt.Sprintf("[QUERY_SELECT] Predefined query %d (%d rows)", id, info.RowCount))
	return info, nil
}

// GetPredefinedQueries lists the catalog for the selector
func (a *App) GetPredefinedQueries() []query.CatalogEntry {
	return a.catalog.Entries()
}

// GetHistory returns the recently run query texts, newest first
func (a *App) GetHistory() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Entries()
}

// GetState returns a snapshot of the shell state
func (a *App) GetState() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	display := a.queryText
	if display == "" {
		display = a.selected.Text
	}
	var lastErr *ErrorInfo
	if a.lastError != nil {
		e := *a.lastError
		lastErr = &e
	}
	return AppState{
		Result:      a.resultInfoLocked(),
		QueryText:   a.queryText,
		DisplayText: display,
		Theme:       a.theme,
		Loading:     a.loading,
		History:     a.history.Entries(),
		Sort:        a.sortSpec,
		LastError:   lastErr,
	}
}
