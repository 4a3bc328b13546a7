// Package workbook reads support-desk spreadsheets into typed datasets.
package workbook

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"supstats/internal/dataset"
	"supstats/internal/errors"
)

// isoLayouts cover the raw forms excelize reports for date-typed cells.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Workbook wraps an open spreadsheet file. Only the XML-based formats
// (xlsx, xlsm) are parseable; anything else fails at Open.
type Workbook struct {
	path   string
	file   *excelize.File
	logger *slog.Logger
}

// Open opens the workbook at path for reading.
func Open(path string, logger *slog.Logger) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("cannot open workbook %s", filepath.Base(path)), err).
			WithContext("path", path)
	}
	return &Workbook{
		path:   path,
		file:   file,
		logger: logger.With(slog.String("component", "workbook")),
	}, nil
}

// Path returns the file path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HeaderRow reads only the first row of the named sheet, for probing
// which sheet carries the export. An empty sheet yields a nil header.
func (w *Workbook) HeaderRow(sheet string) ([]string, error) {
	rows, err := w.file.Rows(sheet)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("cannot read sheet %q", sheet), err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("cannot read header row of sheet %q", sheet), err)
	}
	return header, nil
}

// Dataset loads the named sheet in full. The first row becomes the
// column header; every remaining row is converted to typed cells.
func (w *Workbook) Dataset(sheet string) (*dataset.Dataset, error) {
	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("cannot read sheet %q", sheet), err)
	}
	if len(raw) == 0 {
		return dataset.New(nil, nil), nil
	}

	header := raw[0]
	rows := make([][]dataset.Cell, 0, len(raw)-1)
	for i, rawRow := range raw[1:] {
		cells := make([]dataset.Cell, len(header))
		for j := range header {
			var value string
			if j < len(rawRow) {
				value = rawRow[j]
			}
			// data rows start at sheet row 2
			cells[j] = w.cell(sheet, i+2, j+1, value)
		}
		rows = append(rows, cells)
	}

	w.logger.Debug("sheet loaded",
		slog.String("sheet", sheet),
		slog.Int("columns", len(header)),
		slog.Int("rows", len(rows)))

	return dataset.New(header, rows), nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// cell converts one formatted cell value into a tagged dataset cell,
// using the cell's declared type to keep string-typed digits as text.
func (w *Workbook) cell(sheet string, row, col int, value string) dataset.Cell {
	if strings.TrimSpace(value) == "" {
		return dataset.EmptyCell()
	}

	cellType := excelize.CellTypeUnset
	if axis, err := excelize.CoordinatesToCellName(col, row); err == nil {
		if ct, err := w.file.GetCellType(sheet, axis); err == nil {
			cellType = ct
		}
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError:
		return dataset.TextCell(value)
	case excelize.CellTypeDate:
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return dataset.DateCell(t)
			}
		}
		return dataset.TextCell(value)
	default:
		// Plain numeric cells carry no explicit type marker. Date-styled
		// numbers surface already formatted and fall through to text.
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return dataset.NumberCell(f)
		}
		return dataset.TextCell(value)
	}
}
