// Package normalize maps the column headers found in support-desk
// exports onto the fixed vocabulary the report generator understands.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"supstats/internal/dataset"
	"supstats/internal/errors"
)

// Standard column names produced by normalization.
const (
	ColDate     = "Date"
	ColSLA      = "SLA"
	ColCSAT     = "CSAT"
	ColFR       = "FR"
	ColSessions = "Sessions"
	ColCountry  = "Country"
)

// sourceAliases maps trimmed, lower-cased source headers onto standard
// names. Headers with no entry pass through unchanged, which also makes
// normalization idempotent: the standard names themselves are not keys.
var sourceAliases = map[string]string{
	"report date":           ColDate,
	"sla, %":                ColSLA,
	"avg csat":              ColCSAT,
	"full resolution sla %": ColFR,
	"sessions":              ColSessions,
	"country":               ColCountry,
}

// AliasKeys returns the recognized source header keys, sorted. The
// sheet selector probes header rows against these.
func AliasKeys() []string {
	keys := make([]string, 0, len(sourceAliases))
	for k := range sourceAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Key reduces a header cell to its alias-table form.
func Key(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// IsAlias reports whether the header matches a recognized source column.
func IsAlias(header string) bool {
	_, ok := sourceAliases[Key(header)]
	return ok
}

// Columns returns a copy of ds with recognized headers renamed to the
// standard vocabulary. The input dataset is not modified.
//
// Two source columns aliasing to the same standard name would silently
// shadow each other, so that case is rejected with a validation error
// instead.
func Columns(ds *dataset.Dataset) (*dataset.Dataset, error) {
	renamed := make([]string, len(ds.Columns))
	seen := make(map[string]string, len(sourceAliases))

	for i, col := range ds.Columns {
		target, ok := sourceAliases[Key(col)]
		if !ok {
			renamed[i] = col
			continue
		}
		if prev, dup := seen[target]; dup {
			return nil, errors.NewValidationError(
				fmt.Sprintf("columns %q and %q both map to %q", prev, col, target)).
				WithContext("column", target).
				WithContext("sources", []string{prev, col})
		}
		seen[target] = col
		renamed[i] = target
	}

	return ds.WithColumns(renamed), nil
}
