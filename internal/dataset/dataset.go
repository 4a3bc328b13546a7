package dataset

// Dataset is an ordered tabular slice of a worksheet: a header row and
// the data rows beneath it. Rows are row-major and padded to the header
// width, so Cell lookups never fall off a ragged edge.
type Dataset struct {
	Columns []string
	Rows    [][]Cell
}

// New builds a dataset from a header and rows, padding or truncating
// each row to the header width.
func New(columns []string, rows [][]Cell) *Dataset {
	normalized := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) == len(columns) {
			normalized[i] = row
			continue
		}
		padded := make([]Cell, len(columns))
		for j := range padded {
			if j < len(row) {
				padded[j] = row[j]
			} else {
				padded[j] = EmptyCell()
			}
		}
		normalized[i] = padded
	}
	return &Dataset{Columns: columns, Rows: normalized}
}

// ColumnIndex returns the position of the named column.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, col := range d.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.ColumnIndex(name)
	return ok
}

// Cell returns the cell at the given row for the named column, or the
// empty cell when the column is absent.
func (d *Dataset) Cell(row int, name string) Cell {
	idx, ok := d.ColumnIndex(name)
	if !ok || row < 0 || row >= len(d.Rows) {
		return EmptyCell()
	}
	return d.Rows[row][idx]
}

// WithColumns returns a dataset sharing this dataset's rows under a new
// header. The receiver is left untouched.
func (d *Dataset) WithColumns(columns []string) *Dataset {
	return &Dataset{Columns: columns, Rows: d.Rows}
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}
