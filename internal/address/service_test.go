package address

import (
	"context"
	"testing"

	"rz-parfum-be/internal/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInfo() DeliveryInfo {
	return DeliveryInfo{Name: " Salma ", Phone: "06 41 97 35 45", City: "Casablanca", Address: "12 Rue des Fleurs"}
}

func TestDeliveryInfo_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DeliveryInfo)
		want   error
	}{
		{"Valid", func(*DeliveryInfo) {}, nil},
		{"MissingName", func(d *DeliveryInfo) { d.Name = "  " }, ErrNameRequired},
		{"MissingPhone", func(d *DeliveryInfo) { d.Phone = " " }, ErrPhoneRequired},
		{"MissingCity", func(d *DeliveryInfo) { d.City = "" }, ErrCityRequired},
		{"MissingAddress", func(d *DeliveryInfo) { d.Address = "" }, ErrAddressRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validInfo()
			tt.mutate(&d)
			assert.Equal(t, tt.want, d.Validate())
		})
	}
}

func TestDeliveryInfo_Normalize(t *testing.T) {
	n := validInfo().Normalize()
	assert.Equal(t, "Salma", n.Name)
	assert.Equal(t, "0641973545", n.Phone)
}

func TestService_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	store := localstore.NewMemory()

	_, ok := svc.Load(ctx, store)
	assert.False(t, ok)

	saved, err := svc.Save(ctx, store, validInfo())
	require.NoError(t, err)
	assert.Equal(t, "0641973545", saved.Phone)

	loaded, ok := svc.Load(ctx, store)
	assert.True(t, ok)
	assert.Equal(t, saved, loaded)

	require.NoError(t, svc.Forget(ctx, store))
	_, ok = svc.Load(ctx, store)
	assert.False(t, ok)
}

func TestService_SaveInvalid(t *testing.T) {
	store := localstore.NewMemory()
	_, err := NewService().Save(context.Background(), store, DeliveryInfo{Name: "x"})
	assert.ErrorIs(t, err, ErrPhoneRequired)

	_, getErr := store.Get(context.Background(), StorageKey)
	assert.ErrorIs(t, getErr, localstore.ErrNotFound)
}

func TestService_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	require.NoError(t, store.Put(ctx, StorageKey, []byte("not-json")))

	info, ok := NewService().Load(ctx, store)
	assert.False(t, ok)
	assert.True(t, info.IsZero())
}
