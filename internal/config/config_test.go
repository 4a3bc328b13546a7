package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Report.BOM)
	assert.Equal(t, int64(DefaultMaxUploadSize), cfg.Report.MaxUploadSize)
	assert.Empty(t, cfg.Report.OutputDir)
	assert.Equal(t, DefaultDataDir, cfg.Paths.DataDir)
	assert.Equal(t, DefaultLogsDir, cfg.Paths.LogsDir)

	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "no origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
		{
			name:    "bad upload size",
			mutate:  func(c *Config) { c.Report.MaxUploadSize = -1 },
			wantErr: "upload size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CoercesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  read_timeout: 20s
logging:
  level: debug
report:
  output_dir: /srv/reports
  max_upload_size: 1048576
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/reports", cfg.Report.OutputDir)
	assert.Equal(t, int64(1048576), cfg.Report.MaxUploadSize)
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0644))

	_, err := loadFromFile(path)
	require.Error(t, err)
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	fileCfg.Logging.Level = "debug"
	fileCfg.Report.OutputDir = "/from/file"
	fileCfg.Report.Sheet = "Телефония"

	envCfg := Config{}
	envCfg.Server.Port = 7070

	merged := mergeConfigs(fileCfg, envCfg)

	// Env wins where set, file fills the gaps.
	assert.Equal(t, 7070, merged.Server.Port)
	assert.Equal(t, "debug", merged.Logging.Level)
	assert.Equal(t, "/from/file", merged.Report.OutputDir)
	assert.Equal(t, "Телефония", merged.Report.Sheet)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SUPSTATS_SERVER_PORT", "9191")
	t.Setenv("SUPSTATS_LOGGING_LEVEL", "warn")
	t.Setenv("SUPSTATS_REPORT_OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/out", cfg.Report.OutputDir)

	// envconfig defaults cover everything the env leaves unset.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Report.BOM)
}
