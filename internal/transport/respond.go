package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/order"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/review"
	"rz-parfum-be/internal/user"
	"rz-parfum-be/internal/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("malformed request body")

var (
	notFoundErrs = []error{
		product.ErrProductNotFound,
		cart.ErrProductNotFound,
		review.ErrProductNotFound,
		order.ErrOrderNotFound,
		user.ErrUserNotFound,
	}
	badRequestErrs = []error{
		errBadBody,
		product.ErrInvalidCategory,
		product.ErrInvalidSortKey,
		product.ErrInvalidPrice,
		cart.ErrInvalidQuantity,
		checkout.ErrEmptyCart,
		address.ErrNameRequired,
		address.ErrPhoneRequired,
		address.ErrCityRequired,
		address.ErrAddressRequired,
		order.ErrInvalidStatus,
		order.ErrNoItems,
		order.ErrInvalidItem,
		order.ErrMissingCustomer,
		order.ErrTotalsMismatch,
		review.ErrNameRequired,
		review.ErrInvalidRating,
		user.ErrInvalidEmail,
		user.ErrPasswordTooShort,
		user.ErrPasswordMismatch,
		user.ErrInvalidToken,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// StatusFor maps domain errors to HTTP statuses. Anything unrecognized
// comes from a backing store.
func StatusFor(err error) int {
	switch {
	case isAny(err, notFoundErrs):
		return http.StatusNotFound
	case isAny(err, badRequestErrs):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusBadGateway {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "service temporarily unavailable"
	}
	utils.WriteJSONError(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	utils.WriteJSON(w, status, v)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadBody
	}
	return nil
}
