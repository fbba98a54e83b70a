package transport

import (
	"net/http"

	"rz-parfum-be/internal/review"
)

type reviewsResponse struct {
	Reviews []*review.Review `json:"reviews"`
	Summary review.Summary   `json:"summary"`
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	p, err := h.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.Reviews.List(r.Context(), p.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*review.Review{}
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: list, Summary: review.Summarize(list)})
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var in review.SubmitInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	in.ProductID = r.PathValue("id")

	rv, err := h.Reviews.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}
