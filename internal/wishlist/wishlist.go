package wishlist

import (
	"context"
	"errors"
	"sync"

	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/product"

	"go.uber.org/zap"
)

// StorageKey is the fixed local storage key of the wishlist.
const StorageKey = "rz-wishlist"

// Wishlist is an unbounded, duplicate-free product list in insertion order.
type Wishlist struct {
	items []product.Product
}

func New(items ...product.Product) Wishlist {
	w := Wishlist{}
	for _, p := range items {
		w = w.Add(p)
	}
	return w
}

func (w Wishlist) Add(p product.Product) Wishlist {
	if w.Contains(p.ID) {
		return w
	}
	items := append(make([]product.Product, 0, len(w.items)+1), w.items...)
	return Wishlist{items: append(items, p)}
}

func (w Wishlist) Remove(productID string) Wishlist {
	if !w.Contains(productID) {
		return w
	}
	items := make([]product.Product, 0, len(w.items))
	for _, p := range w.items {
		if p.ID != productID {
			items = append(items, p)
		}
	}
	return Wishlist{items: items}
}

func (w Wishlist) Clear() Wishlist { return Wishlist{} }

func (w Wishlist) Contains(productID string) bool {
	for _, p := range w.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (w Wishlist) Items() []product.Product {
	return append([]product.Product{}, w.items...)
}

func (w Wishlist) Len() int { return len(w.items) }

// Load reads the wishlist from store. Missing, unreadable or corrupt data
// yields an empty wishlist.
func Load(ctx context.Context, store localstore.Store) Wishlist {
	var items []product.Product
	err := localstore.GetJSON(ctx, store, StorageKey, &items)
	switch {
	case err == nil:
		return New(items...)
	case errors.Is(err, localstore.ErrNotFound):
	default:
		logger.FromCtx(ctx).Warn("discarding unreadable wishlist", zap.Error(err))
	}
	return Wishlist{}
}

func Save(ctx context.Context, store localstore.Store, w Wishlist) error {
	return localstore.PutJSON(ctx, store, StorageKey, w.Items())
}

// Repository serializes load-modify-save cycles against one store.
type Repository struct {
	mu    *sync.Mutex
	store localstore.Store
}

func NewRepository(store localstore.Store) *Repository {
	return &Repository{mu: new(sync.Mutex), store: store}
}

func (r *Repository) Get(ctx context.Context) Wishlist {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Load(ctx, r.store)
}

// Update applies fn to the stored wishlist and persists the result. The
// returned wishlist is the committed state; on a save error it is the state
// that was loaded.
func (r *Repository) Update(ctx context.Context, fn func(Wishlist) Wishlist) (Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := Load(ctx, r.store)
	next := fn(current)
	if err := Save(ctx, r.store, next); err != nil {
		logger.FromCtx(ctx).Error("failed to save wishlist", zap.Error(err))
		return current, err
	}
	return next, nil
}
