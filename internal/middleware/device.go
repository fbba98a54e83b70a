package middleware

import (
	"context"
	"net/http"

	"rz-parfum-be/internal/logger"

	"github.com/google/uuid"
)

const (
	DeviceIDHeader = "X-Device-ID"
	DeviceCookie   = "rz_device"

	deviceCookieMaxAge = 365 * 24 * 60 * 60
)

type contextKey string

const deviceIDKey contextKey = "device_id"

func WithDeviceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deviceIDKey, id)
}

// DeviceIDFrom returns the device resolved by DeviceMiddleware.
func DeviceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(deviceIDKey).(string)
	return id
}

// resolveDeviceID reads the header then the cookie. Ids that are not uuids
// are ignored.
func resolveDeviceID(r *http.Request) (string, bool) {
	if v := r.Header.Get(DeviceIDHeader); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			return id.String(), true
		}
	}
	if c, err := r.Cookie(DeviceCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String(), true
		}
	}
	return "", false
}

// DeviceMiddleware identifies the browser owning the cart, comparison set,
// wishlist and delivery form. A new id is issued as a cookie when none is sent.
func DeviceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := resolveDeviceID(r)
		if !ok {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     DeviceCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   deviceCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(DeviceIDHeader, id)

		ctx := WithDeviceID(r.Context(), id)
		ctx = logger.WithDeviceID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
