package handlers

import (
	"net/http"

	"github.com/lehmann314159/dreamcars/internal/catalog"
	"github.com/lehmann314159/dreamcars/internal/models"
	"github.com/lehmann314159/dreamcars/internal/view"
)

type FilterHandler struct {
	cat  *catalog.Catalog
	view *view.View
}

func NewFilterHandler(cat *catalog.Catalog, v *view.View) *FilterHandler {
	return &FilterHandler{cat: cat, view: v}
}

// Update writes each of q, brand and sort that the form carries, in that
// order, and answers with the re-rendered card grid.
func (h *FilterHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.PostForm.Has("q") {
		h.cat.SetSearchTerm(r.PostForm.Get("q"))
	}
	if r.PostForm.Has("brand") {
		h.cat.SetBrandFilter(r.PostForm.Get("brand"))
	}
	if r.PostForm.Has("sort") {
		h.cat.SetSortMode(models.SortMode(r.PostForm.Get("sort")))
	}

	if isHTMX(r) {
		writeHTML(w, string(h.view.Fragments().Cards))
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *FilterHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.cat.ToggleTheme()

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
