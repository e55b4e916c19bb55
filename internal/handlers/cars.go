package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/catalog"
	"github.com/lehmann314159/dreamcars/internal/form"
	"github.com/lehmann314159/dreamcars/internal/view"
)

type CarHandler struct {
	cat    *catalog.Catalog
	view   *view.View
	logger *zap.Logger
}

func NewCarHandler(cat *catalog.Catalog, v *view.View, logger *zap.Logger) *CarHandler {
	return &CarHandler{cat: cat, view: v, logger: logger}
}

func (h *CarHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, h.view, h.logger, "car-form", h.cat.OpenForm(0))
}

func (h *CarHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	render(w, h.view, h.logger, "car-form", h.cat.OpenForm(id))
}

func (h *CarHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	values := form.Values{
		Brand:       r.FormValue("brand"),
		Model:       r.FormValue("model"),
		Year:        r.FormValue("year"),
		Price:       r.FormValue("price"),
		Image:       r.FormValue("image"),
		Description: r.FormValue("description"),
	}

	f, ok := h.cat.Submit(values)
	if !ok {
		if !isHTMX(r) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		render(w, h.view, h.logger, "car-form", f)
		return
	}

	h.respondCatalog(w, r)
}

func (h *CarHandler) CloseForm(w http.ResponseWriter, r *http.Request) {
	h.cat.CloseForm()
	w.WriteHeader(http.StatusOK)
}

func (h *CarHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	h.cat.ToggleFavorite(id)
	h.respondCatalog(w, r)
}

func (h *CarHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	car, ok := h.cat.RequestDelete(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	render(w, h.view, h.logger, "delete-confirm", car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	accepted := h.cat.AnswerDelete(id, r.FormValue("confirm") == "yes")
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !accepted {
		w.WriteHeader(http.StatusOK)
		return
	}

	// A car still present after a delayed answer is on its way out.
	if delay := h.cat.DeleteDelay(); delay > 0 {
		if car, ok := h.cat.Car(id); ok {
			data := map[string]interface{}{"Car": car, "Delay": delay.Milliseconds()}
			render(w, h.view, h.logger, "delete-pending", data)
			return
		}
	}
	render(w, h.view, h.logger, "catalog-update", h.view.Fragments())
}

func (h *CarHandler) respondCatalog(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		render(w, h.view, h.logger, "catalog-update", h.view.Fragments())
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
