package grid

import "queryexplorer/app/interfaces"

type Row = interfaces.Row
type RowSequence = interfaces.RowSequence
type SortKey = interfaces.SortKey

const (
	// DefaultRowHeight is the fixed height of one table row in pixels
	DefaultRowHeight = 35

	// DefaultViewportHeight is the height of the scrollable table body in pixels
	DefaultViewportHeight = 400

	// DefaultOverscan is the number of extra rows kept past the visible area
	DefaultOverscan = 2

	// MaxViewportHeight bounds the viewport; taller requests are clamped
	MaxViewportHeight = 8640
)

// Config holds the fixed geometry of the table body
type Config struct {
	RowHeight      float64 `json:"rowHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
	Overscan       int     `json:"overscan"`
}

// DefaultConfig returns the standard table geometry
func DefaultConfig() Config {
	return Config{
		RowHeight:      DefaultRowHeight,
		ViewportHeight: DefaultViewportHeight,
		Overscan:       DefaultOverscan,
	}
}

// Range is a half-open interval [Start, End) of row indexes
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indexes in the range
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether i lies in the range
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Slot is one reusable display row. Slot k only ever shows indexes i with
// i mod visibleCount == k, so scrolling reassigns slots instead of growing.
type Slot struct {
	Slot  int     `json:"slot"`
	Index int     `json:"index"`
	Top   float64 `json:"top"`
	Row   Row     `json:"row"`
}

// Column is a header cell
type Column struct {
	Key       SortKey `json:"key"`
	Label     string  `json:"label"`
	Indicator string  `json:"indicator,omitempty"` // ▲ or ▼ on the sorted column
}

// Page is everything the frontend needs to draw the table body
type Page struct {
	Columns        []Column `json:"columns"`
	Slots          []Slot   `json:"slots"`
	Start          int      `json:"start"`
	End            int      `json:"end"`
	Total          int      `json:"total"`
	Offset         float64  `json:"offset"`
	RowHeight      float64  `json:"rowHeight"`
	ViewportHeight float64  `json:"viewportHeight"`
	TotalHeight    float64  `json:"totalHeight"`
}
