package report

import (
	"fmt"

	"supstats/internal/dataset"
)

// missingValue stands in for metrics the sheet left blank or
// unparseable.
const missingValue = "no"

// formatFraction renders a 0..1 ratio as a percentage with one decimal.
func formatFraction(c dataset.Cell) string {
	f, ok := c.Float()
	if !ok {
		return missingValue
	}
	return fmt.Sprintf("%.1f%%", f*100)
}

// formatScore renders a satisfaction score with two decimals.
func formatScore(c dataset.Cell) string {
	f, ok := c.Float()
	if !ok {
		return missingValue
	}
	return fmt.Sprintf("%.2f", f)
}

// sessionCount truncates the session cell to a whole number. Blank and
// non-numeric cells count as zero.
func sessionCount(c dataset.Cell) int64 {
	n, ok := c.Int()
	if !ok {
		return 0
	}
	return n
}
