// Package services implements the business logic layer of the support
// stats application. It sits between the transport handlers (or the CLI)
// and the lower-level packages, so that workbook reading, normalization,
// report generation and file output are always driven through one place.
//
// # Error boundary
//
// ReportService.Generate is the single catch point of the pipeline:
// every failure below it (unreadable workbook, missing columns,
// unparseable dates, write errors) surfaces here, is counted, and is
// recorded in a timestamped error log next to where the report would
// have been written. Callers receive a *GenerateError that carries both
// the original failure and the error log location.
//
// # Common service pattern
//
// Services follow the same structure:
//
//	type ServiceName struct {
//		config *config.Config
//		paths  *config.Paths
//		logger *slog.Logger
//	}
//
// Dependencies are injected through the constructor, a nil logger falls
// back to slog.Default, and every blocking method takes a
// context.Context first.
package services
