package app

import (
	"errors"
	"fmt"

	"queryexplorer/app/grid"
	"queryexplorer/app/interfaces"
	"queryexplorer/app/query"
)

// ErrStaleResult is returned for window requests against a result that has
// since been replaced
var ErrStaleResult = errors.New("result has been superseded")

// SortBy handles a header click: the same column flips direction, a new
// column sorts ascending. The table scrolls back to the top.
func (a *App) SortBy(column string) (WindowResponse, error) {
	key, err := interfaces.ParseSortKey(column)
	if err != nil {
		return WindowResponse{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.table.OnHeaderClick(key); err != nil {
		return WindowResponse{}, err
	}
	a.Log("debug", fmt.Sprintf("[SORT] %s %s", a.sortSpec.Key, a.sortSpec.Direction))
	return a.windowLocked(), nil
}

// toggleSortLocked is the table's sort trigger. Caller holds a.mu.
func (a *App) toggleSortLocked(key interfaces.SortKey) {
	a.sortSpec = a.sortSpec.Toggle(key)
	a.rebuildViewLocked()
}

// rebuildViewLocked derives the sorted view of the selected rows and hands
// it to the table. Caller holds a.mu.
func (a *App) rebuildViewLocked() {
	a.view = query.SortedView(a.selected.Rows, a.sortSpec)
	a.table.SetData(a.view)
}

// GetWindow scrolls the table to offset pixels and returns the rows in view.
// resultID must be the id of the currently selected result.
func (a *App) GetWindow(resultID string, offset float64) (WindowResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if resultID != a.resultID.String() {
		return WindowResponse{}, fmt.Errorf("window for %s: %w", resultID, ErrStaleResult)
	}
	a.table.ScrollTo(offset)
	return a.windowLocked(), nil
}

// ResizeViewport changes the visible table height, keeping the scroll
// position as a fraction of the content
func (a *App) ResizeViewport(height float64) WindowResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table.Resize(height)
	return a.windowLocked()
}

// GetCurrentWindow returns the window at the current scroll position
func (a *App) GetCurrentWindow() WindowResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.windowLocked()
}

func (a *App) windowLocked() WindowResponse {
	return WindowResponse{
		ResultID: a.resultID.String(),
		Page:     a.table.Page(a.sortSpec),
	}
}

// visibleRows returns the rows currently in the table window
func (a *App) visibleRows() interfaces.RowSequence {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table.VisibleRows()
}

// GetColumns returns the header cells with the current sort indicator
func (a *App) GetColumns() []grid.Column {
	a.mu.Lock()
	defer a.mu.Unlock()
	return grid.Header(a.sortSpec)
}
