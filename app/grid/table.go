package grid

import (
	"fmt"
	"math"

	"queryexplorer/app/interfaces"
)

// Table renders a window of a row sequence. Only the rows inside the
// viewport plus a small overscan are held in display slots, so the cost of
// a scroll or a page is proportional to the viewport, not to the number of
// rows. A Table is not safe for concurrent use.
type Table struct {
	cfg          Config
	rows         RowSequence
	offset       float64
	visibleCount int
	window       Range
	slots        []Slot

	sortTrigger func(SortKey)
}

// NewTable creates a table with the given geometry. Invalid values fall back
// to the defaults.
func NewTable(cfg Config) *Table {
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = DefaultRowHeight
	}
	if cfg.ViewportHeight < 0 || math.IsNaN(cfg.ViewportHeight) {
		cfg.ViewportHeight = DefaultViewportHeight
	}
	cfg.ViewportHeight = math.Min(cfg.ViewportHeight, MaxViewportHeight)
	if cfg.Overscan < 0 {
		cfg.Overscan = DefaultOverscan
	}
	t := &Table{cfg: cfg, rows: RowSequence{}}
	t.resizeSlots()
	t.layout()
	return t
}

// SetSortTrigger registers the function header clicks are forwarded to
func (t *Table) SetSortTrigger(fn func(SortKey)) {
	t.sortTrigger = fn
}

// SetData replaces the backing sequence and scrolls back to the top.
// Scroll offsets into the previous sequence are meaningless for the new one.
func (t *Table) SetData(rows RowSequence) {
	if rows == nil {
		rows = RowSequence{}
	}
	t.rows = rows
	t.offset = 0
	t.layout()
}

// ScrollTo moves the viewport to offset pixels from the top and returns the
// new window. The offset is clamped to the scrollable range.
func (t *Table) ScrollTo(offset float64) Range {
	t.offset = t.clampOffset(offset)
	t.layout()
	return t.window
}

// Resize changes the viewport height, clamped to [0, MaxViewportHeight].
// The scroll position is kept as a fraction of the content height so the
// same rows stay near the top.
func (t *Table) Resize(viewportHeight float64) Range {
	if viewportHeight < 0 || math.IsNaN(viewportHeight) {
		viewportHeight = 0
	}
	viewportHeight = math.Min(viewportHeight, MaxViewportHeight)
	fraction := 0.0
	if h := t.ContentHeight(); h > 0 {
		fraction = t.offset / h
	}
	t.cfg.ViewportHeight = viewportHeight
	t.resizeSlots()
	t.offset = t.clampOffset(fraction * t.ContentHeight())
	t.layout()
	return t.window
}

// OnHeaderClick forwards a header click to the sort trigger. The table does
// not sort; the owner recomputes the view and calls SetData.
func (t *Table) OnHeaderClick(key SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("unknown column %q", string(key))
	}
	if t.sortTrigger != nil {
		t.sortTrigger(key)
	}
	return nil
}

// Len returns the number of rows in the backing sequence
func (t *Table) Len() int {
	return len(t.rows)
}

// Offset returns the current scroll offset in pixels
func (t *Table) Offset() float64 {
	return t.offset
}

// Config returns the current geometry
func (t *Table) Config() Config {
	return t.cfg
}

// VisibleCount is the maximum number of rows held at once:
// ceil(viewport/rowHeight) plus the overscan, and at least one.
func (t *Table) VisibleCount() int {
	return t.visibleCount
}

// Window returns the range of row indexes currently in display slots
func (t *Table) Window() Range {
	return t.window
}

// ContentHeight is the full scroll height of all rows
func (t *Table) ContentHeight() float64 {
	return float64(len(t.rows)) * t.cfg.RowHeight
}

// VisibleRow returns row i when it is inside the current window
func (t *Table) VisibleRow(i int) (Row, bool) {
	if !t.window.Contains(i) {
		return Row{}, false
	}
	return t.slots[i%t.visibleCount].Row, true
}

// Slots returns the active display slots in row order
func (t *Table) Slots() []Slot {
	out := make([]Slot, 0, t.window.Len())
	for i := t.window.Start; i < t.window.End; i++ {
		out = append(out, t.slots[i%t.visibleCount])
	}
	return out
}

// VisibleRows returns the rows of the current window in order
func (t *Table) VisibleRows() RowSequence {
	out := make(RowSequence, 0, t.window.Len())
	for i := t.window.Start; i < t.window.End; i++ {
		out = append(out, t.slots[i%t.visibleCount].Row)
	}
	return out
}

// Header returns the column headers with the indicator for spec
func Header(spec interfaces.SortSpec) []Column {
	cols := make([]Column, len(interfaces.Columns))
	for i, key := range interfaces.Columns {
		cols[i] = Column{
			Key:       key,
			Label:     interfaces.ColumnLabels[key],
			Indicator: spec.Indicator(key),
		}
	}
	return cols
}

// Page builds the frontend payload for the current window
func (t *Table) Page(spec interfaces.SortSpec) Page {
	return Page{
		Columns:        Header(spec),
		Slots:          t.Slots(),
		Start:          t.window.Start,
		End:            t.window.End,
		Total:          len(t.rows),
		Offset:         t.offset,
		RowHeight:      t.cfg.RowHeight,
		ViewportHeight: t.cfg.ViewportHeight,
		TotalHeight:    t.ContentHeight(),
	}
}

func (t *Table) maxOffset() float64 {
	return math.Max(0, t.ContentHeight()-t.cfg.ViewportHeight)
}

func (t *Table) clampOffset(offset float64) float64 {
	if math.IsNaN(offset) || offset < 0 {
		return 0
	}
	return math.Min(offset, t.maxOffset())
}

// resizeSlots recomputes visibleCount. The ring itself is sized in layout.
func (t *Table) resizeSlots() {
	n := int(math.Ceil(t.cfg.ViewportHeight/t.cfg.RowHeight)) + t.cfg.Overscan
	if n < 1 {
		n = 1
	}
	t.visibleCount = n
}

// ringSize is the number of slots needed: visibleCount, or fewer when the
// sequence is shorter. Indexes below len(rows) < visibleCount map to
// themselves, so the smaller ring is never indexed out of range.
func (t *Table) ringSize() int {
	return min(t.visibleCount, len(t.rows))
}

// layout recomputes the window for the current offset and assigns every
// index in it to its slot
func (t *Table) layout() {
	n := len(t.rows)
	start := int(math.Floor(t.offset / t.cfg.RowHeight))
	if start > n {
		start = n
	}
	if start < 0 {
		start = 0
	}
	end := start + t.visibleCount
	if end > n {
		end = n
	}
	t.window = Range{Start: start, End: end}

	if size := t.ringSize(); len(t.slots) != size {
		t.slots = make([]Slot, size)
	}
	for i := start; i < end; i++ {
		k := i % t.visibleCount
		t.slots[k] = Slot{
			Slot:  k,
			Index: i,
			Top:   float64(i) * t.cfg.RowHeight,
			Row:   t.rows[i],
		}
	}
}
