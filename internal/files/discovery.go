package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"supstats/internal/config"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative
// directories passed to the finders resolve against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindWorkbooks finds the Excel workbooks in dir, newest first. Office
// lock files ("~$...") are skipped.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	return d.find(dir, func(name string) bool {
		if strings.HasPrefix(name, "~$") {
			return false
		}
		ext := strings.ToLower(filepath.Ext(name))
		return ext == ".xlsx" || ext == ".xls"
	})
}

// FindReports finds the finished report files in dir, newest first.
func (d *Discovery) FindReports(dir string) ([]FileInfo, error) {
	return d.find(dir, func(name string) bool {
		return strings.HasPrefix(name, config.ReportFilePrefix) &&
			!strings.HasPrefix(name, config.ErrorLogFilePrefix) &&
			strings.HasSuffix(name, config.ReportFileExt)
	})
}

// FindErrorLogs finds the error log files in dir, newest first.
func (d *Discovery) FindErrorLogs(dir string) ([]FileInfo, error) {
	return d.find(dir, func(name string) bool {
		return strings.HasPrefix(name, config.ErrorLogFilePrefix) &&
			strings.HasSuffix(name, ".log")
	})
}

func (d *Discovery) find(dir string, match func(name string) bool) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Latest returns the newest file from a find result.
func Latest(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}
	latest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}
	return latest, true
}
