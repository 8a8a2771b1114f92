package http

import (
	"context"

	"sinandash/internal/dataset"
	"sinandash/internal/services"
)

// DashboardServiceInterface defines the dashboard operations used by the
// handler, kept narrow for testability.
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, years []int) (*services.Dashboard, error)
	Years(ctx context.Context) ([]int, error)
	Status() dataset.Status
}
