package address

import (
	"context"
	"errors"

	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/logger"

	"go.uber.org/zap"
)

// StorageKey is the fixed local storage key of the saved delivery form.
const StorageKey = "rz-delivery-info"

type Service interface {
	// Load returns the saved form and whether one was found.
	Load(ctx context.Context, store localstore.Store) (DeliveryInfo, bool)
	Save(ctx context.Context, store localstore.Store, info DeliveryInfo) (DeliveryInfo, error)
	Forget(ctx context.Context, store localstore.Store) error
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) Load(ctx context.Context, store localstore.Store) (DeliveryInfo, bool) {
	var info DeliveryInfo
	err := localstore.GetJSON(ctx, store, StorageKey, &info)
	switch {
	case err == nil:
		return info, true
	case errors.Is(err, localstore.ErrNotFound):
	default:
		logger.FromCtx(ctx).Warn("discarding unreadable delivery info",
			zap.String("layer", "service"),
			zap.Error(err),
		)
	}
	return DeliveryInfo{}, false
}

func (s *service) Save(ctx context.Context, store localstore.Store, info DeliveryInfo) (DeliveryInfo, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SaveDeliveryInfo"),
	)

	info = info.Normalize()
	if err := info.Validate(); err != nil {
		log.Debug("invalid delivery info", zap.Error(err))
		return DeliveryInfo{}, err
	}

	if err := localstore.PutJSON(ctx, store, StorageKey, info); err != nil {
		log.Error("failed to save delivery info", zap.Error(err))
		return DeliveryInfo{}, err
	}

	log.Info("delivery info saved", zap.String("city", info.City))
	return info, nil
}

func (s *service) Forget(ctx context.Context, store localstore.Store) error {
	return store.Delete(ctx, StorageKey)
}
