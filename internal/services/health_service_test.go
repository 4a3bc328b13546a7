package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstats/internal/config"
)

func newTestHealthService(t *testing.T) (*HealthService, *config.Paths) {
	t.Helper()

	base := t.TempDir()
	paths := &config.Paths{
		ExecutableDir: base,
		DataDir:       filepath.Join(base, "data"),
		UploadsDir:    filepath.Join(base, "data", "uploads"),
		ReportsDir:    filepath.Join(base, "data", "reports"),
		LogsDir:       filepath.Join(base, "logs"),
		DownloadsDir:  filepath.Join(base, "downloads"),
	}
	return NewHealthServiceWithBuildInfo("1.2.0", "2024-01-05T10:00:00Z", "abc123", paths, testLogger()), paths
}

func TestHealthCheck(t *testing.T) {
	svc, _ := newTestHealthService(t)

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.0", status.Version)
	assert.False(t, status.Timestamp.IsZero())
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "uptime_seconds")
}

func TestReadinessCheck_AllDirectoriesPresent(t *testing.T) {
	svc, paths := newTestHealthService(t)
	for _, dir := range []string{paths.ReportsDir, paths.UploadsDir, paths.LogsDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	status := svc.ReadinessCheck(context.Background())

	assert.Equal(t, "ready", status.Status)
	require.Len(t, status.Services, 3)
	for name, health := range status.Services {
		sh, ok := health.(ServiceHealth)
		require.True(t, ok, "unexpected entry for %s", name)
		assert.Equal(t, "ok", sh.Status)
	}
}

func TestReadinessCheck_MissingDirectoryDegrades(t *testing.T) {
	svc, paths := newTestHealthService(t)
	require.NoError(t, os.MkdirAll(paths.ReportsDir, 0755))
	require.NoError(t, os.MkdirAll(paths.LogsDir, 0755))
	// uploads dir deliberately absent

	status := svc.ReadinessCheck(context.Background())

	assert.Equal(t, "degraded", status.Status)
	uploads, ok := status.Services["uploads_dir"].(ServiceHealth)
	require.True(t, ok)
	assert.Equal(t, "unavailable", uploads.Status)
	assert.Contains(t, uploads.Message, paths.UploadsDir)
}

func TestVersionInfo(t *testing.T) {
	svc, _ := newTestHealthService(t)

	info := svc.VersionInfo(context.Background())

	assert.Equal(t, config.AppName, info["app"])
	assert.Equal(t, "1.2.0", info["version"])
	assert.Equal(t, "abc123", info["build_id"])
	assert.NotEmpty(t, info["go_version"])
}

func TestUptime(t *testing.T) {
	svc, _ := newTestHealthService(t)

	assert.GreaterOrEqual(t, svc.Uptime().Nanoseconds(), int64(0))
}
