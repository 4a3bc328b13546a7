package services

import "errors"

// Service errors
var (
	// Report errors
	ErrNoWorkbookSelected = errors.New("no workbook selected")
	ErrReportNotFound     = errors.New("report not found")

	// File errors
	ErrInvalidFileType = errors.New("invalid file type")
)
