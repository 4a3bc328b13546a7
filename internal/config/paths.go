package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: everything
// resolves relative to the executable directory except DownloadsDir,
// which points at the user's Downloads folder.
type Paths struct {
	ExecutableDir string
	DataDir       string
	UploadsDir    string
	ReportsDir    string
	LogsDir       string
	DownloadsDir  string
}

// GetPaths resolves the application paths relative to the executable
// location, never the current working directory. The config section can
// override the executable, data and logs directories; relative
// overrides resolve against the executable directory.
func GetPaths(pc PathsConfig) (*Paths, error) {
	exeDir := pc.ExecutableDir
	if exeDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %v", err)
		}

		// Resolve symlinks to get the actual executable location
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
		}
		exeDir = filepath.Dir(exe)
	}

	// Directory structure:
	// <exe dir>/
	//   ├── data/
	//   │   ├── uploads/   (workbooks received over HTTP)
	//   │   └── reports/   (generated report files)
	//   └── logs/          (application logs)

	dataDir := resolveDir(exeDir, pc.DataDir, DefaultDataDir)
	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		UploadsDir:    filepath.Join(dataDir, "uploads"),
		ReportsDir:    filepath.Join(dataDir, "reports"),
		LogsDir:       resolveDir(exeDir, pc.LogsDir, DefaultLogsDir),
		DownloadsDir:  userDownloadsDir(exeDir),
	}

	return paths, nil
}

// resolveDir picks the configured directory or the fallback, resolving
// relative paths against the executable directory.
func resolveDir(exeDir, configured, fallback string) string {
	dir := configured
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(exeDir, dir)
}

// userDownloadsDir resolves the user's Downloads folder, falling back
// to a downloads directory beside the executable when no home
// directory is available.
func userDownloadsDir(exeDir string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(exeDir, "downloads")
	}
	return filepath.Join(home, "Downloads")
}

// EnsureDirectories creates all required directories if they don't exist.
// The Downloads folder is deliberately left alone; it is created on
// first write instead.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.UploadsDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetUploadPath returns the path for an uploaded workbook
func (p *Paths) GetUploadPath(filename string) string {
	return filepath.Join(p.UploadsDir, filename)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetDownloadPath returns the path for a file in the user's Downloads folder
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("uploads", p.UploadsDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
			slog.String("downloads", p.DownloadsDir),
		))
}
