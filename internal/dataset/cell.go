package dataset

import (
	"strconv"
	"strings"
	"time"
)

// CellKind discriminates the value held by a Cell.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindDate
)

// String returns the kind name for logging and diagnostics.
func (k CellKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a single spreadsheet value. Exactly one representation is
// populated, selected by the kind; absent values are KindEmpty rather
// than nil so consumers never branch on untyped data.
type Cell struct {
	kind   CellKind
	text   string
	number float64
	date   time.Time
}

// EmptyCell returns the null cell.
func EmptyCell() Cell {
	return Cell{kind: KindEmpty}
}

// TextCell returns a cell holding free-form text.
func TextCell(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// NumberCell returns a cell holding a numeric value.
func NumberCell(f float64) Cell {
	return Cell{kind: KindNumber, number: f}
}

// DateCell returns a cell holding a calendar timestamp.
func DateCell(t time.Time) Cell {
	return Cell{kind: KindDate, date: t}
}

// Kind returns the cell's discriminator.
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.kind == KindEmpty
}

// String returns the display form of the cell. Empty cells render as "".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.number, 'f', -1, 64)
	case KindDate:
		return c.date.Format("02/01/2006")
	default:
		return ""
	}
}

// Float returns the numeric value of the cell. Text cells are parsed
// after trimming so numeric columns stored as text still format; the
// second return is false when no numeric reading exists.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.number, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the cell's value truncated toward zero.
func (c Cell) Int() (int64, bool) {
	f, ok := c.Float()
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// Date returns the timestamp held by a date cell.
func (c Cell) Date() (time.Time, bool) {
	if c.kind != KindDate {
		return time.Time{}, false
	}
	return c.date, true
}
