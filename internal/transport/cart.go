package transport

import (
	"net/http"

	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/compare"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/session"

	"go.uber.org/zap"
)

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) updateCart(r *http.Request, fn func(cart.Cart) cart.Cart) cart.Summary {
	st := h.Sessions.Update(deviceID(r.Context()), func(s session.State) session.State {
		s.Cart = fn(s.Cart)
		return s
	})
	return h.Pricing.Summarize(st.Cart)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	st := h.Sessions.Get(deviceID(r.Context()))
	writeJSON(w, http.StatusOK, h.Pricing.Summarize(st.Cart))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, ok := h.Products.Catalogue().Get(req.ProductID)
	if !ok {
		writeError(w, r, cart.ErrProductNotFound)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if !cart.ValidQuantity(qty) {
		writeError(w, r, cart.ErrInvalidQuantity)
		return
	}

	summary := h.updateCart(r, func(c cart.Cart) cart.Cart {
		return c.Add(p, qty)
	})

	logger.FromCtx(r.Context()).Debug("cart item added",
		zap.String("layer", "handler"),
		zap.String("product_id", p.ID),
		zap.Int("item_count", summary.ItemCount),
	)
	writeJSON(w, http.StatusOK, summary)
}

// UpdateCartItem sets a line's quantity. Zero or less removes the line,
// above cart.MaxQuantity is rejected.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity == nil || *req.Quantity > cart.MaxQuantity {
		writeError(w, r, cart.ErrInvalidQuantity)
		return
	}
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, h.updateCart(r, func(c cart.Cart) cart.Cart {
		return c.UpdateQuantity(id, *req.Quantity)
	}))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, h.updateCart(r, func(c cart.Cart) cart.Cart {
		return c.RemoveItem(id)
	}))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.updateCart(r, func(c cart.Cart) cart.Cart {
		return c.Clear()
	}))
}

type compareResponse struct {
	Items  []product.Product `json:"items"`
	Count  int               `json:"count"`
	CanAdd bool              `json:"can_add"`
	Matrix compare.Matrix    `json:"matrix"`
	Added  *bool             `json:"added,omitempty"`
}

func newCompareResponse(s compare.Set) compareResponse {
	return compareResponse{
		Items:  s.Items(),
		Count:  s.Len(),
		CanAdd: s.CanAdd(),
		Matrix: compare.BuildMatrix(s),
	}
}

func (h *Handler) updateCompare(r *http.Request, fn func(compare.Set) compare.Set) compare.Set {
	return h.Sessions.Update(deviceID(r.Context()), func(s session.State) session.State {
		s.Compare = fn(s.Compare)
		return s
	}).Compare
}

func (h *Handler) GetCompare(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCompareResponse(h.Sessions.Get(deviceID(r.Context())).Compare))
}

// AddCompare answers 409 with added=false when the set is full or already
// holds the product.
func (h *Handler) AddCompare(w http.ResponseWriter, r *http.Request) {
	p, err := h.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var added bool
	set := h.updateCompare(r, func(s compare.Set) compare.Set {
		s, added = s.Add(p)
		return s
	})

	resp := newCompareResponse(set)
	resp.Added = &added
	status := http.StatusOK
	if !added {
		status = http.StatusConflict
	}
	writeJSON(w, status, resp)
}

func (h *Handler) RemoveCompare(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, newCompareResponse(h.updateCompare(r, func(s compare.Set) compare.Set {
		return s.Remove(id)
	})))
}

func (h *Handler) ClearCompare(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCompareResponse(h.updateCompare(r, func(s compare.Set) compare.Set {
		return s.Clear()
	})))
}
