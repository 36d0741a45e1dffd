package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (a *App) SearchBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSpace(chi.URLParam(r, "barcode"))
	product, err := a.Catalog.Product(r.Context(), barcode)
	if err != nil {
		a.fail(w, r, err, tr(r, msgProductNotFound, barcode))
		return
	}
	a.ok(w, envelope{"product": product})
}

func (a *App) SearchName(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgMissingQuery))
		return
	}
	pageSize := a.SearchPageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	hits, err := a.Catalog.Search(r.Context(), query, pageSize)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	a.ok(w, envelope{"products": hits, "count": len(hits)})
}
