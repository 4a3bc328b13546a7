package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"supstats/internal/config"
	apierrors "supstats/internal/errors"
	"supstats/internal/exporter"
	"supstats/internal/files"
	"supstats/internal/metrics"
	"supstats/internal/normalize"
	"supstats/internal/report"
	"supstats/internal/workbook"
)

// uploadTimestampLayout keeps stored upload names unique per second.
const uploadTimestampLayout = "20060102150405"

// ReportService drives the workbook-to-report pipeline: open, pick a
// sheet, normalize headers, generate, write. It is the single error
// boundary of the application; any failure inside Generate is counted,
// logged to a timestamped error log, and returned as a *GenerateError.
type ReportService struct {
	config    *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	writer    *exporter.TextWriter
	generator *report.Generator
	metrics   *metrics.Collector
	discovery *files.Discovery

	// clock is swapped out in tests for deterministic filenames.
	clock func() time.Time
}

// NewReportService creates a report service with injected dependencies.
// A nil logger falls back to slog.Default, a nil collector gets its own
// registry.
func NewReportService(cfg *config.Config, paths *config.Paths, collector *metrics.Collector, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "report"))
	if collector == nil {
		collector = metrics.NewCollector()
	}

	logger.Info("ReportService initialized",
		slog.String("reports_dir", paths.ReportsDir),
		slog.String("uploads_dir", paths.UploadsDir),
		slog.String("downloads_dir", paths.DownloadsDir))

	return &ReportService{
		config:    cfg,
		paths:     paths,
		logger:    logger,
		writer:    exporter.NewTextWriter(logger),
		generator: report.NewGenerator(logger),
		metrics:   collector,
		discovery: files.NewDiscovery(paths.ExecutableDir),
		clock:     time.Now,
	}
}

// GenerateRequest names the workbook to process. Sheet is optional; when
// empty the sheet is picked by probing header rows for known column
// names. OutputDir overrides where the report file lands.
type GenerateRequest struct {
	WorkbookPath string `json:"workbook_path" validate:"required"`
	Sheet        string `json:"sheet,omitempty" validate:"omitempty,sheetname"`
	OutputDir    string `json:"output_dir,omitempty"`
}

// GenerateResult is a finished run: where the report was written plus
// the report facts themselves.
type GenerateResult struct {
	ReportPath string         `json:"report_path"`
	Report     *report.Report `json:"report"`
}

// GenerateError wraps a pipeline failure together with the error log
// written for it. ErrorLogPath is empty when the log itself could not
// be written.
type GenerateError struct {
	Err          error
	ErrorLogPath string
}

func (e *GenerateError) Error() string {
	return e.Err.Error()
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// Generate runs the full pipeline for one workbook. An empty workbook
// path is the caller's mistake and returns ErrNoWorkbookSelected before
// the error boundary engages; everything past that point comes back as
// a *GenerateError with an error log on disk.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if strings.TrimSpace(req.WorkbookPath) == "" {
		return nil, ErrNoWorkbookSelected
	}

	runID := uuid.New().String()
	started := s.clock()
	result, err := s.generate(ctx, req)
	if err != nil {
		s.metrics.ReportsFailed.WithLabelValues(string(apierrors.TypeOf(err))).Inc()
		logPath := s.writeErrorLog(ctx, req, err)
		s.logger.ErrorContext(ctx, "report generation failed",
			slog.String("run_id", runID),
			slog.String("workbook", req.WorkbookPath),
			slog.String("error", err.Error()),
			slog.String("error_log", logPath))
		return nil, &GenerateError{Err: err, ErrorLogPath: logPath}
	}

	s.metrics.ReportsGenerated.Inc()
	s.metrics.RowsProcessed.Add(float64(result.Report.Rows))
	s.metrics.RowsSkipped.Add(float64(result.Report.SkippedRows))
	s.metrics.GenerateDuration.Observe(s.clock().Sub(started).Seconds())

	s.logger.InfoContext(ctx, "report generated",
		slog.String("run_id", runID),
		slog.String("workbook", req.WorkbookPath),
		slog.String("report", result.ReportPath),
		slog.Int("rows", result.Report.Rows),
		slog.Int("days", result.Report.Days),
		slog.Int64("total_sessions", result.Report.Summary.TotalSessions))
	return result, nil
}

func (s *ReportService) generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	wb, err := workbook.Open(req.WorkbookPath, s.logger)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := s.resolveSheet(wb, req.Sheet)
	if err != nil {
		return nil, err
	}

	ds, err := wb.Dataset(sheet)
	if err != nil {
		return nil, err
	}

	normalized, err := normalize.Columns(ds)
	if err != nil {
		return nil, err
	}

	rep, err := s.generator.Generate(ctx, normalized)
	if err != nil {
		return nil, err
	}

	path, err := s.writer.Write(ctx, exporter.WriteOptions{
		Dir:       s.outputDir(req.OutputDir),
		Filename:  rep.Filename(),
		Content:   rep.Text,
		BOMPrefix: s.config.Report.BOM,
	})
	if err != nil {
		return nil, err
	}

	return &GenerateResult{ReportPath: path, Report: rep}, nil
}

// resolveSheet picks the sheet to read. An explicitly requested sheet
// must exist; a configured sheet behaves the same; otherwise the first
// sheet whose header row carries a known column name wins.
func (s *ReportService) resolveSheet(wb *workbook.Workbook, requested string) (string, error) {
	if requested == "" {
		requested = s.config.Report.Sheet
	}
	names := wb.SheetNames()
	if requested != "" {
		for _, name := range names {
			if name == requested {
				return requested, nil
			}
		}
		return "", apierrors.NewNotFoundError(fmt.Sprintf("sheet %q", requested)).
			WithContext("sheets", names)
	}
	return workbook.SelectSheet(names, wb.HeaderRow)
}

// outputDir resolves where report files land: request override first,
// then the configured directory, then the user's Downloads folder.
func (s *ReportService) outputDir(requested string) string {
	if requested != "" {
		return requested
	}
	if s.config.Report.OutputDir != "" {
		return s.config.Report.OutputDir
	}
	return s.paths.DownloadsDir
}

// writeErrorLog records a failed run next to where the report would have
// been written. The workbook is reopened best-effort so the log can name
// the sheets and columns that were actually present. Returns an empty
// path when the log could not be written; that failure is swallowed so
// the original error still reaches the caller.
func (s *ReportService) writeErrorLog(ctx context.Context, req GenerateRequest, cause error) string {
	entry := &exporter.ErrorLog{
		When:         s.clock(),
		Err:          cause,
		WorkbookPath: req.WorkbookPath,
	}

	if wb, err := workbook.Open(req.WorkbookPath, s.logger); err != nil {
		entry.ProbeErr = err
	} else {
		entry.Sheets = wb.SheetNames()
		entry.HeadersBySheet = make(map[string][]string, len(entry.Sheets))
		for _, sheet := range entry.Sheets {
			headers, err := wb.HeaderRow(sheet)
			if err != nil || headers == nil {
				continue
			}
			entry.HeadersBySheet[sheet] = headers
		}
		wb.Close()
	}

	path, ok := entry.Write(s.outputDir(req.OutputDir))
	if !ok {
		s.logger.WarnContext(ctx, "error log could not be written",
			slog.String("workbook", req.WorkbookPath))
		return ""
	}
	return path
}

// ReportInfo describes one finished report on disk.
type ReportInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// reportsDir is where listings and downloads look: the configured
// output directory when set, else the server's reports directory. Kept
// in step with the directory the web surface writes to.
func (s *ReportService) reportsDir() string {
	if s.config.Report.OutputDir != "" {
		return s.config.Report.OutputDir
	}
	return s.paths.ReportsDir
}

// ListReports returns finished reports from the reports directory,
// newest first. A missing directory is an empty listing, not an error.
func (s *ReportService) ListReports(ctx context.Context) ([]ReportInfo, error) {
	dir := s.reportsDir()
	found, err := s.discovery.FindReports(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []ReportInfo{}, nil
		}
		return nil, apierrors.NewStorageError("failed to list reports", err).
			WithContext("dir", dir)
	}

	reports := make([]ReportInfo, 0, len(found))
	for _, f := range found {
		reports = append(reports, ReportInfo{
			Name:     f.Name,
			Size:     f.Size,
			Modified: f.ModTime,
		})
	}

	s.logger.DebugContext(ctx, "reports listed",
		slog.String("dir", dir),
		slog.Int("count", len(reports)))
	return reports, nil
}

// OpenReport resolves a report filename to its on-disk path. The name is
// reduced to its base so callers cannot traverse outside the reports
// directory.
func (s *ReportService) OpenReport(filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", ErrReportNotFound
	}
	path := filepath.Join(s.reportsDir(), name)
	if !config.FileExists(path) {
		return "", ErrReportNotFound
	}
	return path, nil
}

// SaveUpload stores an uploaded workbook under the uploads directory
// with a timestamped name and returns the stored path. Only Excel
// extensions are accepted.
func (s *ReportService) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return "", ErrInvalidFileType
	}

	if err := os.MkdirAll(s.paths.UploadsDir, 0755); err != nil {
		return "", apierrors.NewStorageError("failed to create uploads directory", err).
			WithContext("dir", s.paths.UploadsDir)
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stored := fmt.Sprintf("%s_%s%s", base, s.clock().Format(uploadTimestampLayout), ext)
	path := s.paths.GetUploadPath(stored)

	file, err := os.Create(path)
	if err != nil {
		return "", apierrors.NewStorageError("failed to store upload", err).
			WithContext("path", path)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", apierrors.NewStorageError("failed to store upload", err).
			WithContext("path", path)
	}

	s.logger.InfoContext(ctx, "upload stored",
		slog.String("original", filename),
		slog.String("path", path))
	return path, nil
}
