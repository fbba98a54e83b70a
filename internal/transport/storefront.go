package transport

import (
	"net/http"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/wishlist"
)

type wishlistResponse struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
}

func newWishlistResponse(wl wishlist.Wishlist) wishlistResponse {
	return wishlistResponse{Items: wl.Items(), Count: wl.Len()}
}

func (h *Handler) wishlist(r *http.Request) *wishlist.Repository {
	return h.Wishlists.For(deviceID(r.Context()))
}

func (h *Handler) updateWishlist(w http.ResponseWriter, r *http.Request, fn func(wishlist.Wishlist) wishlist.Wishlist) {
	wl, err := h.wishlist(r).Update(r.Context(), fn)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newWishlistResponse(wl))
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newWishlistResponse(h.wishlist(r).Get(r.Context())))
}

func (h *Handler) AddWishlist(w http.ResponseWriter, r *http.Request) {
	p, err := h.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.updateWishlist(w, r, func(wl wishlist.Wishlist) wishlist.Wishlist { return wl.Add(p) })
}

func (h *Handler) RemoveWishlist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.updateWishlist(w, r, func(wl wishlist.Wishlist) wishlist.Wishlist { return wl.Remove(id) })
}

func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.updateWishlist(w, r, func(wl wishlist.Wishlist) wishlist.Wishlist { return wl.Clear() })
}

type deliveryResponse struct {
	Saved bool                 `json:"saved"`
	Info  address.DeliveryInfo `json:"info"`
}

func (h *Handler) GetDeliveryInfo(w http.ResponseWriter, r *http.Request) {
	info, ok := h.Delivery.Load(r.Context(), deviceStore(r.Context(), h.LocalStore))
	writeJSON(w, http.StatusOK, deliveryResponse{Saved: ok, Info: info})
}

func (h *Handler) SaveDeliveryInfo(w http.ResponseWriter, r *http.Request) {
	var info address.DeliveryInfo
	if err := decode(r, &info); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := h.Delivery.Save(r.Context(), deviceStore(r.Context(), h.LocalStore), info)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deliveryResponse{Saved: true, Info: saved})
}

func (h *Handler) ForgetDeliveryInfo(w http.ResponseWriter, r *http.Request) {
	if err := h.Delivery.Forget(r.Context(), deviceStore(r.Context(), h.LocalStore)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlaceOrder places the device's cart. A body without delivery details falls
// back to the saved form.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var info address.DeliveryInfo
	if err := decode(r, &info); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	res, err := h.placer().Place(ctx, deviceID(ctx), deviceStore(ctx, h.LocalStore), info)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) placer() checkout.Placer {
	return checkout.Placer{Checkout: h.Checkout, Sessions: h.Sessions, Delivery: h.Delivery}
}
