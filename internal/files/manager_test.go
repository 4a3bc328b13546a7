package files

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRemoveOlderThan(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	stale := touch(t, dir, "stale.xlsx", now.Add(-48*time.Hour))
	fresh := touch(t, dir, "fresh.xlsx", now.Add(-time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "keepdir"), 0755))

	removed, err := testManager().RemoveOlderThan(dir, 24*time.Hour, now)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.DirExists(t, filepath.Join(dir, "keepdir"))
}

func TestRemoveOlderThan_NothingStale(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "fresh.xlsx", now)

	removed, err := testManager().RemoveOlderThan(dir, 24*time.Hour, now)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRemoveOlderThan_MissingDir(t *testing.T) {
	removed, err := testManager().RemoveOlderThan(filepath.Join(t.TempDir(), "absent"), time.Hour, time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
}
