package transport

import (
	"net/http"

	"rz-parfum-be/internal/auth"
	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/order"
	"rz-parfum-be/internal/user"
	"rz-parfum-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type newPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

func (h *Handler) authenticated(w http.ResponseWriter, status int, token string, u user.User) {
	auth.SetAccessTokenCookie(w, token, user.AccessTokenTTL, h.SecureCookies)
	writeJSON(w, status, authResponse{Token: token, User: u})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	token, u, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.authenticated(w, http.StatusCreated, token, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	token, u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromCtx(r.Context()).Info("user logged in",
		zap.String("layer", "handler"),
		zap.Uint("user_id", u.ID),
	)
	h.authenticated(w, http.StatusOK, token, u)
}

// Me returns the signed-in account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.GetUserByEmail(r.Context(), utils.GetUserEmailFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAccessTokenCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// RequestPasswordReset answers the same way whether or not the email is
// registered.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req newPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Users.ResetPassword(r.Context(), req.Token, req.Password, req.Confirm); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

// adminOrder is an order as the dashboard shows it.
type adminOrder struct {
	*order.Order
	StatusLabel string `json:"status_label"`
	ContactURL  string `json:"contact_url"`
}

func newAdminOrder(o *order.Order) adminOrder {
	return adminOrder{
		Order:       o,
		StatusLabel: o.Status.Label(),
		ContactURL:  checkout.ContactLink(o.CustomerPhone),
	}
}

func orderID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, order.ErrOrderNotFound
	}
	return id, nil
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f order.Filter
	if v := q.Get("status"); v != "" && v != "all" {
		st, err := order.ParseStatus(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		f.Status = st
	}
	f.Limit = utils.ParseIntDefault(q.Get("limit"), 0)
	f.Offset = utils.ParseIntDefault(q.Get("offset"), 0)

	orders, err := h.Orders.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]adminOrder, 0, len(orders))
	for _, o := range orders {
		views = append(views, newAdminOrder(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": views, "count": len(views)})
}

func (h *Handler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Orders.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAdminOrder(o))
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.Orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAdminOrder(o))
}
