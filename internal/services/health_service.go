package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"supstats/internal/config"
)

// HealthService answers the liveness and readiness probes of the web UI.
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health endpoint response body.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents one dependency's health.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service with injected dependencies
// and no build metadata.
func NewHealthService(version string, paths *config.Paths, logger *slog.Logger) *HealthService {
	return NewHealthServiceWithBuildInfo(version, "", "", paths, logger)
}

// NewHealthServiceWithBuildInfo creates a health service carrying build
// identification for the version endpoint.
func NewHealthServiceWithBuildInfo(version, buildTime, buildID string, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("build_id", buildID))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		buildID:   buildID,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall liveness.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
		},
	}

	hs.logger.Debug("HealthCheck: completed",
		slog.String("status", status.Status))
	return status
}

// ReadinessCheck verifies the directories the pipeline writes to. A
// missing directory degrades readiness but is reported per service so
// the UI can name the broken path.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	services := make(map[string]interface{})
	overall := "ready"

	checks := map[string]string{
		"reports_dir": hs.paths.ReportsDir,
		"uploads_dir": hs.paths.UploadsDir,
		"logs_dir":    hs.paths.LogsDir,
	}
	for name, dir := range checks {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			services[name] = ServiceHealth{
				Status:  "unavailable",
				Message: fmt.Sprintf("directory %s is not accessible", dir),
			}
			overall = "degraded"
			continue
		}
		services[name] = ServiceHealth{Status: "ok"}
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  services,
	}

	hs.logger.Debug("ReadinessCheck: completed",
		slog.String("status", status.Status))
	return status
}

// VersionInfo returns build identification for the version endpoint.
func (hs *HealthService) VersionInfo(ctx context.Context) map[string]string {
	return map[string]string{
		"app":        config.AppName,
		"version":    hs.version,
		"build_time": hs.buildTime,
		"build_id":   hs.buildID,
		"go_version": runtime.Version(),
	}
}

// Uptime reports how long the service has been running.
func (hs *HealthService) Uptime() time.Duration {
	return time.Since(hs.startTime)
}
