package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/catalog"
	"github.com/lehmann314159/dreamcars/internal/view"
)

type HomeHandler struct {
	cat    *catalog.Catalog
	view   *view.View
	logger *zap.Logger
}

func NewHomeHandler(cat *catalog.Catalog, v *view.View, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{cat: cat, view: v, logger: logger}
}

func (h *HomeHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Fragments": h.view.Fragments(),
		"State":     h.cat.State(),
	}
	render(w, h.view, h.logger, "index.html", data)
}

func (h *HomeHandler) Cards(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, string(h.view.Fragments().Cards))
}

func (h *HomeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, string(h.view.Fragments().Stats))
}

// Catalog returns every fragment a collection write can change, as
// out-of-band swaps.
func (h *HomeHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	render(w, h.view, h.logger, "catalog-update", h.view.Fragments())
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func render(w http.ResponseWriter, v *view.View, logger *zap.Logger, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.Execute(w, name, data); err != nil {
		logger.Error("template execution failed", zap.String("template", name), zap.Error(err))
	}
}
