package interfaces

import (
	"fmt"
	"strconv"
)

// Row is one record of a result set. Rows are values and are never modified
// after a query produces them.
type Row struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// Field returns the display value of the named column.
func (r Row) Field(key SortKey) string {
	switch key {
	case SortKeyID:
		return strconv.Itoa(r.ID)
	case SortKeyName:
		return r.Name
	case SortKeyAge:
		return strconv.Itoa(r.Age)
	case SortKeyEmail:
		return r.Email
	}
	panic(fmt.Sprintf("interfaces: unknown column %q", string(key)))
}

// Values returns the row's cells in column order.
func (r Row) Values() []string {
	return []string{strconv.Itoa(r.ID), r.Name, strconv.Itoa(r.Age), r.Email}
}

// RowSequence is the full ordered result of one query execution.
// Holders must treat it as read-only: the same backing array may be shared
// between the cache, the selected query and the sorted view.
type RowSequence []Row

// Query is a query text together with its result rows.
// ID 0 is an ad-hoc query typed by the user; positive IDs are predefined.
type Query struct {
	ID   int         `json:"id"`
	Text string      `json:"text"`
	Rows RowSequence `json:"-"`
}

// AdHocQueryID identifies queries typed by the user.
const AdHocQueryID = 0

// SortKey names one of the fixed result columns.
type SortKey string

const (
	SortKeyNone  SortKey = ""
	SortKeyID    SortKey = "id"
	SortKeyName  SortKey = "name"
	SortKeyAge   SortKey = "age"
	SortKeyEmail SortKey = "email"
)

// Columns lists the result columns in display order.
var Columns = []SortKey{SortKeyID, SortKeyName, SortKeyAge, SortKeyEmail}

// ColumnLabels are the header captions shown for each column.
var ColumnLabels = map[SortKey]string{
	SortKeyID:    "ID",
	SortKeyName:  "Name",
	SortKeyAge:   "Age",
	SortKeyEmail: "Email",
}

// Valid reports whether k is one of the fixed columns.
func (k SortKey) Valid() bool {
	switch k {
	case SortKeyID, SortKeyName, SortKeyAge, SortKeyEmail:
		return true
	}
	return false
}

// Numeric reports whether the column compares numerically.
func (k SortKey) Numeric() bool {
	return k == SortKeyID || k == SortKeyAge
}

// ParseSortKey validates a column name received from the frontend.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.Valid() {
		return SortKeyNone, fmt.Errorf("unknown sort column %q", s)
	}
	return k, nil
}

// SortDirection represents sort order
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec selects the column and direction of the sorted view.
// An empty Key means natural (insertion) order.
type SortSpec struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// Toggle returns the sort produced by clicking the header of key:
// the same key flips direction, a new key starts ascending.
func (s SortSpec) Toggle(key SortKey) SortSpec {
	if s.Key == key {
		if s.Direction == SortAsc {
			return SortSpec{Key: key, Direction: SortDesc}
		}
		return SortSpec{Key: key, Direction: SortAsc}
	}
	return SortSpec{Key: key, Direction: SortAsc}
}

// Indicator returns the header arrow for key under this sort, or "".
func (s SortSpec) Indicator(key SortKey) string {
	if s.Key == SortKeyNone || s.Key != key {
		return ""
	}
	if s.Direction == SortDesc {
		return "▼"
	}
	return "▲"
}

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Other returns the theme a toggle switches to.
func (t Theme) Other() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Logger interface for package logging
type Logger interface {
	Log(level, message string)
}
