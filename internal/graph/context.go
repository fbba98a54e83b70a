package graph

import (
	"context"

	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/middleware"
)

func deviceID(ctx context.Context) string {
	return middleware.DeviceIDFrom(ctx)
}

// deviceStore is the device's private view of the local store, the same
// one the REST handlers use.
func deviceStore(ctx context.Context, store localstore.Store) localstore.Store {
	return localstore.Scoped(store, "device:"+deviceID(ctx))
}
