package services

import (
	"context"
	"log/slog"
	"time"

	"sinandash/internal/dataset"
)

// HealthStatus is the response body of the health endpoints.
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Dataset   dataset.Status `json:"dataset"`
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthService reports process and dataset health. A failed dataset load
// degrades the status but never makes the process unhealthy: the dashboard
// keeps serving its awaiting-data state.
type HealthService struct {
	store   *dataset.Store
	name    string
	version string
	logger  *slog.Logger
}

// NewHealthService creates a health service.
func NewHealthService(store *dataset.Store, name, version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:   store,
		name:    name,
		version: version,
		logger:  logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck reports overall health: "healthy" when the dataset is loaded
// or not yet requested, "degraded" when the single load attempt failed.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := "healthy"
	ds := s.store.Status()
	if ds.State == dataset.StateFailed {
		status = "degraded"
	}
	return HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Dataset:   ds,
	}
}

// ReadinessCheck reports whether the server is ready to take traffic. The
// server is always ready once listening; the dataset state rides along for
// operators.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
		Dataset:   s.store.Status(),
	}
}

// LivenessCheck reports process liveness.
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]string {
	return map[string]string{"status": "alive"}
}

// Version returns the build identity.
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{Name: s.name, Version: s.version}
}
