package workbook

import (
	"supstats/internal/errors"
	"supstats/internal/normalize"
)

// HeaderRowFunc returns the header row of the named sheet.
type HeaderRowFunc func(sheet string) ([]string, error)

// SelectSheet picks the sheet holding the export: the first one whose
// header row contains at least one recognized source column. Sheets
// whose header cannot be read are skipped. When nothing matches, the
// first sheet is returned so a single-sheet workbook always loads.
func SelectSheet(names []string, headerRow HeaderRowFunc) (string, error) {
	if len(names) == 0 {
		return "", errors.NewConfigError("workbook has no sheets", nil)
	}

	for _, name := range names {
		header, err := headerRow(name)
		if err != nil {
			continue
		}
		for _, cell := range header {
			if normalize.IsAlias(cell) {
				return name, nil
			}
		}
	}

	return names[0], nil
}
