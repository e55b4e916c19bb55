package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehmann314159/dreamcars/internal/catalog"
)

type APIHandler struct {
	cat *catalog.Catalog
}

func NewAPIHandler(cat *catalog.Catalog) *APIHandler {
	return &APIHandler{cat: cat}
}

// Cars lists the visible cars, in display order.
func (h *APIHandler) Cars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cat.Visible())
}

func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cat.Stats())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
