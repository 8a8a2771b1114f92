package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"sinandash/internal/dataset"
	apierrors "sinandash/internal/errors"
)

// DashboardHandler serves the dashboard payload and the year filter domain.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetDashboard)
	r.Get("/years", h.GetYears)
	r.Get("/status", h.GetStatus)
	return r
}

// yearSelection bounds the accepted filter values.
type yearSelection struct {
	Years []int `validate:"omitempty,dive,min=1900,max=2100"`
}

// GetDashboard handles GET /api/dashboard?years=2020,2022. An absent years
// parameter selects every year; a present-but-empty one selects none,
// mirroring a fully deselected filter control.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	years, err := parseYears(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("years", err.Error()))
		return
	}
	if err := h.validate.Struct(yearSelection{Years: years}); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("years", "year out of accepted range"))
		return
	}

	db, err := h.service.Dashboard(r.Context(), years)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, db)
}

// GetYears handles GET /api/dashboard/years.
func (h *DashboardHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.Years(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"years": years})
}

// GetStatus handles GET /api/dashboard/status without forcing a load.
func (h *DashboardHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status())
}

func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dataset.ErrUnavailable) {
		h.errorHandler.HandleError(w, r, apierrors.DataUnavailableError(err))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// parseYears reads the year selection from the query string, accepting both
// repeated parameters and comma-separated lists. nil means the parameter was
// absent; an empty non-nil slice means it was present with no values.
func parseYears(r *http.Request) ([]int, error) {
	values, ok := r.URL.Query()["years"]
	if !ok {
		return nil, nil
	}

	years := []int{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			y, err := strconv.Atoi(part)
			if err != nil {
				return nil, errors.New("years must be a list of integers")
			}
			years = append(years, y)
		}
	}
	return years, nil
}
