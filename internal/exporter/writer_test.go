package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "supstats/internal/errors"
)

func TestTextWriter_WriteWithBOM(t *testing.T) {
	dir := t.TempDir()
	w := NewTextWriter(nil)

	path, err := w.Write(context.Background(), WriteOptions{
		Dir:       dir,
		Filename:  "support_stats_20240102_20240103.txt",
		Content:   "📝02/01/2024 #б2бинормал\n",
		BOMPrefix: true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "support_stats_20240102_20240103.txt"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
	assert.Equal(t, "📝02/01/2024 #б2бинормал\n", string(raw[3:]))
}

func TestTextWriter_WriteWithoutBOM(t *testing.T) {
	dir := t.TempDir()
	w := NewTextWriter(nil)

	path, err := w.Write(context.Background(), WriteOptions{
		Dir:      dir,
		Filename: "plain.txt",
		Content:  "hello",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
}

func TestTextWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	w := NewTextWriter(nil)

	path, err := w.Write(context.Background(), WriteOptions{
		Dir:      dir,
		Filename: "report.txt",
		Content:  "x",
	})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestTextWriter_Truncates(t *testing.T) {
	dir := t.TempDir()
	w := NewTextWriter(nil)

	opts := WriteOptions{Dir: dir, Filename: "report.txt", Content: "a much longer first version"}
	_, err := w.Write(context.Background(), opts)
	require.NoError(t, err)

	opts.Content = "short"
	path, err := w.Write(context.Background(), opts)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(raw))
}

func TestTextWriter_EmptyFilename(t *testing.T) {
	w := NewTextWriter(nil)
	_, err := w.Write(context.Background(), WriteOptions{Dir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
