package transport

import (
	"context"

	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/middleware"
)

const devicePrefix = "device:"

// deviceID is the storefront device the request acts for.
func deviceID(ctx context.Context) string {
	return middleware.DeviceIDFrom(ctx)
}

// deviceStore is the device's private view of the local store.
func deviceStore(ctx context.Context, store localstore.Store) localstore.Store {
	return localstore.Scoped(store, devicePrefix+deviceID(ctx))
}
