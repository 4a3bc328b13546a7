package report

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"supstats/internal/dataset"
)

// textLayouts are tried in order against text cells. Day comes before
// month: 05/03/2024 is the 5th of March.
var textLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2/1/06",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate extracts a timestamp from a cell. Date cells pass through,
// numeric cells are treated as spreadsheet serial dates, and text cells
// go through the day-first layouts. The second return is false when the
// cell holds nothing recognizable as a date.
func ParseDate(c dataset.Cell) (time.Time, bool) {
	switch c.Kind() {
	case dataset.KindDate:
		return c.Date()
	case dataset.KindNumber:
		serial, _ := c.Float()
		if serial <= 0 {
			return time.Time{}, false
		}
		when, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return when, true
	case dataset.KindText:
		value := strings.TrimSpace(c.String())
		if value == "" {
			return time.Time{}, false
		}
		for _, layout := range textLayouts {
			if when, err := time.Parse(layout, value); err == nil {
				return when, true
			}
		}
	}
	return time.Time{}, false
}
