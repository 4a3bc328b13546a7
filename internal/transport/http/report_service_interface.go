package http

import (
	"context"
	"io"

	"supstats/internal/services"
)

// ReportServiceInterface defines the report operations handlers depend on.
type ReportServiceInterface interface {
	Generate(ctx context.Context, req services.GenerateRequest) (*services.GenerateResult, error)
	ListReports(ctx context.Context) ([]services.ReportInfo, error)
	OpenReport(filename string) (string, error)
	SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error)
}
