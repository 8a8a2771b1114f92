package http

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// WebHandler serves the embedded dashboard page and its static assets.
type WebHandler struct {
	assets fs.FS
	logger *slog.Logger
}

// NewWebHandler creates a handler over the embedded web assets.
func NewWebHandler(assets fs.FS, logger *slog.Logger) *WebHandler {
	return &WebHandler{
		assets: assets,
		logger: logger.With(slog.String("handler", "web")),
	}
}

// Index serves the dashboard page. The page itself decides between the
// chart view and the awaiting-data state based on the API responses.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.assets, "index.html")
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard page missing from embedded assets",
			slog.String("error", err.Error()))
		http.Error(w, "dashboard page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// Static serves the remaining embedded assets.
func (h *WebHandler) Static() http.Handler {
	return http.FileServer(http.FS(h.assets))
}
