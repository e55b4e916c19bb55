package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/catalog"
	"github.com/lehmann314159/dreamcars/internal/metrics"
	"github.com/lehmann314159/dreamcars/internal/view"
)

func NewRouter(cat *catalog.Catalog, v *view.View, m *metrics.Metrics, logger *zap.Logger, staticDir string) http.Handler {
	homeHandler := NewHomeHandler(cat, v, logger)
	filterHandler := NewFilterHandler(cat, v)
	carHandler := NewCarHandler(cat, v, logger)
	apiHandler := NewAPIHandler(cat)

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// Page and fragments
	mux.HandleFunc("GET /{$}", homeHandler.Page)
	mux.HandleFunc("GET /cars", homeHandler.Cards)
	mux.HandleFunc("GET /stats", homeHandler.Stats)
	mux.HandleFunc("GET /catalog", homeHandler.Catalog)

	// Filters and theme
	mux.HandleFunc("POST /filters", filterHandler.Update)
	mux.HandleFunc("POST /theme", filterHandler.ToggleTheme)

	// Cars
	mux.HandleFunc("GET /cars/new", carHandler.New)
	mux.HandleFunc("GET /cars/{id}/edit", carHandler.Edit)
	mux.HandleFunc("POST /cars", carHandler.Submit)
	mux.HandleFunc("DELETE /form", carHandler.CloseForm)
	mux.HandleFunc("POST /cars/{id}/favorite", carHandler.ToggleFavorite)
	mux.HandleFunc("GET /cars/{id}/delete", carHandler.ConfirmDelete)
	mux.HandleFunc("POST /cars/{id}/delete", carHandler.Delete)

	// JSON
	mux.HandleFunc("GET /api/cars", apiHandler.Cars)
	mux.HandleFunc("GET /api/stats", apiHandler.Stats)

	// Operations
	mux.HandleFunc("GET /healthz", homeHandler.Health)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	return requestLogger(logger, m, mux)
}
