package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"supstats/internal/config"
	"supstats/internal/files"
	"supstats/internal/infrastructure"
	"supstats/internal/metrics"
	"supstats/internal/services"
	"supstats/internal/validation"
)

func main() {
	workbookPath := flag.String("in", "", "workbook to process (.xlsx or .xls), or a directory holding one")
	sheet := flag.String("sheet", "", "sheet to read (default: probe for known columns)")
	outDir := flag.String("out", "", "output directory for the report (default: Downloads folder)")
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	// A local .env can carry SUPSTATS_* settings during development.
	_ = godotenv.Load()

	// No workbook is not an error: nothing was asked for.
	if *workbookPath == "" {
		fmt.Println("No workbook selected. Pass -in <file.xlsx> to generate a report.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		logger.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	target, err := resolveWorkbook(*workbookPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Catch unusable paths up front so a typo gets a plain message
	// instead of an error log.
	if err := validation.NewFileValidator(logger).ValidateWorkbookFile(target); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot use %s: %v\n", target, err)
		os.Exit(1)
	}

	service := services.NewReportService(cfg, paths, metrics.NewCollector(), logger)

	// A trace ID correlates this run's log lines the same way a web
	// request's do.
	ctx := infrastructure.EnsureTraceID(context.Background())
	result, err := service.Generate(ctx, services.GenerateRequest{
		WorkbookPath: target,
		Sheet:        *sheet,
		OutputDir:    *outDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report generation failed: %v\n", err)
		var genErr *services.GenerateError
		if errors.As(err, &genErr) && genErr.ErrorLogPath != "" {
			fmt.Fprintf(os.Stderr, "Details logged to: %s\n", genErr.ErrorLogPath)
		}
		os.Exit(1)
	}

	fmt.Printf("Report saved to:\n  %s\n", result.ReportPath)
	fmt.Printf("Days: %d  Rows: %d  Skipped: %d\n",
		result.Report.Days, result.Report.Rows, result.Report.SkippedRows)
}

// resolveWorkbook turns the -in argument into a concrete workbook file.
// A directory means "use the newest workbook inside it".
func resolveWorkbook(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		// Missing paths fall through to the validator for a clearer message.
		return path, nil
	}

	workbooks, err := files.NewDiscovery(".").FindWorkbooks(path)
	if err != nil {
		return "", err
	}
	newest, ok := files.Latest(workbooks)
	if !ok {
		return "", fmt.Errorf("no workbooks found in %s", path)
	}
	fmt.Printf("Using newest workbook: %s\n", newest.Path)
	return newest.Path, nil
}
