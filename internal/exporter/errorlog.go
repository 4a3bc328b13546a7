package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// errorLogLayout timestamps error log filenames to the second.
const errorLogLayout = "20060102150405"

// ErrorLog describes a failed report run.
type ErrorLog struct {
	When         time.Time
	Err          error
	WorkbookPath string

	// Workbook diagnostics, filled in best-effort after the failure.
	Sheets         []string
	HeadersBySheet map[string][]string
	ProbeErr       error
}

// Filename returns the timestamped log name for this entry.
func (l *ErrorLog) Filename() string {
	return fmt.Sprintf("support_stats_error_%s.log", l.When.Format(errorLogLayout))
}

// Write renders the log under dir and reports the written path. The
// boolean is false when the log itself could not be written; callers
// must not let that failure mask the original error.
func (l *ErrorLog) Write(dir string) (string, bool) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false
	}
	path := filepath.Join(dir, l.Filename())
	if err := os.WriteFile(path, []byte(l.render()), 0644); err != nil {
		return "", false
	}
	return path, true
}

func (l *ErrorLog) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time: %s\n", l.When.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Error processing file: %s\n", l.WorkbookPath)
	fmt.Fprintf(&b, "Error: %v\n", l.Err)

	switch {
	case len(l.Sheets) > 0:
		fmt.Fprintf(&b, "Sheets: %s\n", strings.Join(l.Sheets, ", "))
		for _, sheet := range l.sheetsWithHeaders() {
			fmt.Fprintf(&b, "%s columns: %s\n", sheet, strings.Join(l.HeadersBySheet[sheet], ", "))
		}
	case l.ProbeErr != nil:
		fmt.Fprintf(&b, "Failed listing sheets/columns: %v\n", l.ProbeErr)
	}
	return b.String()
}

// sheetsWithHeaders keeps the workbook's sheet order for sheets that
// were probed, appending any extras alphabetically.
func (l *ErrorLog) sheetsWithHeaders() []string {
	var ordered []string
	seen := make(map[string]bool)
	for _, sheet := range l.Sheets {
		if _, ok := l.HeadersBySheet[sheet]; ok {
			ordered = append(ordered, sheet)
			seen[sheet] = true
		}
	}
	var extras []string
	for sheet := range l.HeadersBySheet {
		if !seen[sheet] {
			extras = append(extras, sheet)
		}
	}
	sort.Strings(extras)
	return append(ordered, extras...)
}
