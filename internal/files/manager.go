package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Manager provides file housekeeping operations
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger.With(slog.String("component", "files"))}
}

// RemoveOlderThan deletes regular files in dir whose modification time
// predates now minus maxAge, and reports how many were removed. A
// missing directory removes nothing. Per-file removal failures are
// logged and skipped so one locked file does not stall the sweep.
func (m *Manager) RemoveOlderThan(dir string, maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			m.logger.Warn("failed to remove stale file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	if removed > 0 {
		m.logger.Info("stale files removed",
			slog.String("dir", dir),
			slog.Int("count", removed))
	}
	return removed, nil
}
