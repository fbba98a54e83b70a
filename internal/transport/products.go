package transport

import (
	"net/http"
	"strconv"
	"strings"

	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/utils"
)

// parseFilter reads the listing query. An absent max selects up to the
// catalogue's most expensive product.
func parseFilter(r *http.Request, catalogueMax int64) (product.FilterState, error) {
	q := r.URL.Query()

	cat, err := product.ParseCategory(q.Get("category"))
	if err != nil {
		return product.FilterState{}, err
	}
	sort, err := product.ParseSortKey(q.Get("sort"))
	if err != nil {
		return product.FilterState{}, err
	}

	f := product.FilterState{
		Category: cat,
		MaxPrice: catalogueMax,
		Notes:    utils.SplitList(q.Get("notes")),
		Search:   strings.TrimSpace(q.Get("q")),
		Sort:     sort,
	}
	if v := q.Get("min"); v != "" {
		if f.MinPrice, err = strconv.ParseInt(v, 10, 64); err != nil {
			return product.FilterState{}, product.ErrInvalidPrice
		}
	}
	if v := q.Get("max"); v != "" {
		if f.MaxPrice, err = strconv.ParseInt(v, 10, 64); err != nil {
			return product.FilterState{}, product.ErrInvalidPrice
		}
	}
	return f, nil
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r, h.Products.Catalogue().MaxPrice())
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.Products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) ProductFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Products.Facets(r.Context()))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	d, err := h.Products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// lookup resolves the path's product id against the catalogue.
func (h *Handler) lookup(r *http.Request) (product.Product, error) {
	p, ok := h.Products.Catalogue().Get(r.PathValue("id"))
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}
