package exporter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorLog_Filename(t *testing.T) {
	log := &ErrorLog{When: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)}
	assert.Equal(t, "support_stats_error_20240102150405.log", log.Filename())
}

func TestErrorLog_Write(t *testing.T) {
	dir := t.TempDir()
	log := &ErrorLog{
		When:         time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Err:          errors.New("boom"),
		WorkbookPath: "/data/uploads/stats.xlsx",
		Sheets:       []string{"Summary", "Raw"},
		HeadersBySheet: map[string][]string{
			"Summary": {"Report date", "Country", "Sessions"},
			"Raw":     {"id", "note"},
		},
	}

	path, ok := log.Write(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "support_stats_error_20240102150405.log"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Time: 2024-01-02 15:04:05", lines[0])
	assert.Equal(t, "Error processing file: /data/uploads/stats.xlsx", lines[1])
	assert.Equal(t, "Error: boom", lines[2])
	assert.Equal(t, "Sheets: Summary, Raw", lines[3])
	assert.Equal(t, "Summary columns: Report date, Country, Sessions", lines[4])
	assert.Equal(t, "Raw columns: id, note", lines[5])
}

func TestErrorLog_KeepsSheetOrder(t *testing.T) {
	log := &ErrorLog{
		When:         time.Now(),
		Err:          errors.New("boom"),
		WorkbookPath: "x.xlsx",
		Sheets:       []string{"Zulu", "Alpha"},
		HeadersBySheet: map[string][]string{
			"Alpha": {"a"},
			"Zulu":  {"z"},
		},
	}

	text := log.render()
	assert.Less(t, strings.Index(text, "Zulu columns"), strings.Index(text, "Alpha columns"))
}

func TestErrorLog_ProbeFailure(t *testing.T) {
	log := &ErrorLog{
		When:         time.Now(),
		Err:          errors.New("boom"),
		WorkbookPath: "x.xlsx",
		ProbeErr:     errors.New("file vanished"),
	}

	text := log.render()
	assert.Contains(t, text, "Failed listing sheets/columns: file vanished")
	assert.NotContains(t, text, "Sheets:")
}

func TestErrorLog_NoDiagnostics(t *testing.T) {
	log := &ErrorLog{
		When:         time.Now(),
		Err:          errors.New("boom"),
		WorkbookPath: "x.xlsx",
	}

	text := log.render()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestErrorLog_WriteFailureIsQuiet(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	log := &ErrorLog{When: time.Now(), Err: errors.New("boom")}
	path, ok := log.Write(filepath.Join(blocker, "logs"))
	assert.False(t, ok)
	assert.Empty(t, path)
}
