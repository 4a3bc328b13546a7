package config

import "time"

// Application constants shared across the supstats binaries.
const (
	AppName    = "Support Stats"
	AppVersion = "1.2.0"

	// Rate limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network timeouts
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultOperationTimeout = 2 * time.Minute

	// File paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultUploadsDir = "data/uploads"
	DefaultReportsDir = "data/reports"

	// Upload limits
	DefaultMaxUploadSize = 20 << 20 // 20MB

	// Upload retention: stored workbooks are working copies, the report
	// is the artifact that matters.
	UploadRetention     = 7 * 24 * time.Hour
	UploadSweepInterval = time.Hour

	// Report output
	ReportFilePrefix   = "support_stats_"
	ReportFileExt      = ".txt"
	ErrorLogFilePrefix = "support_stats_error_"
)
