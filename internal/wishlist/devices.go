package wishlist

import (
	"sync"

	"rz-parfum-be/internal/localstore"

	"github.com/cespare/xxhash/v2"
)

// lockStripes bounds the locks held for all devices together.
const lockStripes = 64

// Devices hands out Repositories scoped to one device's namespace of the
// shared store. Nothing is kept per device: a device id hashes onto one of
// a fixed set of locks, so updates from the same device are serialized
// however many devices show up.
type Devices struct {
	store localstore.Store
	locks [lockStripes]sync.Mutex
}

func NewDevices(store localstore.Store) *Devices {
	return &Devices{store: store}
}

// For returns the repository of deviceID.
func (d *Devices) For(deviceID string) *Repository {
	return &Repository{
		mu:    d.lockFor(deviceID),
		store: localstore.Scoped(d.store, "device:"+deviceID),
	}
}

func (d *Devices) lockFor(deviceID string) *sync.Mutex {
	return &d.locks[xxhash.Sum64String(deviceID)%lockStripes]
}
