package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *Order {
	return &Order{
		CustomerName:    "Salma",
		CustomerPhone:   "0641973545",
		CustomerCity:    "Rabat",
		CustomerAddress: "3 Avenue Hassan II",
		Items: []Item{
			{ProductID: "1", Name: "Oud Royal", Price: 50, Quantity: 2},
			{ProductID: "13", Name: "Pack Duo", Price: 130, Quantity: 1},
		},
		Subtotal:    230,
		DeliveryFee: 15,
		Total:       245,
	}
}

func TestParseStatus(t *testing.T) {
	for _, st := range AllStatuses {
		got, err := ParseStatus(" " + string(st) + " ")
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	got, err := ParseStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, got)

	_, err = ParseStatus("refunded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "En attente", StatusPending.Label())
	assert.Equal(t, "Annulée", StatusCancelled.Label())
	assert.Equal(t, "unknown", Status("unknown").Label())
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Order)
		want   error
	}{
		{"Valid", func(*Order) {}, nil},
		{"FreeDelivery", func(o *Order) {
			o.Items = []Item{{ProductID: "16", Name: "Pack Prestige", Price: 250, Quantity: 2}}
			o.Subtotal, o.DeliveryFee, o.Total = 500, 0, 500
		}, nil},
		{"MissingCustomer", func(o *Order) { o.CustomerCity = " " }, ErrMissingCustomer},
		{"NoItems", func(o *Order) { o.Items = nil }, ErrNoItems},
		{"ZeroQuantity", func(o *Order) { o.Items[0].Quantity = 0 }, ErrInvalidItem},
		{"SubtotalMismatch", func(o *Order) { o.Subtotal = 200 }, ErrTotalsMismatch},
		{"TotalMismatch", func(o *Order) { o.Total = 230 }, ErrTotalsMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := sampleOrder()
			tt.mutate(o)
			assert.Equal(t, tt.want, o.Validate())
		})
	}
}

func TestFilter_Normalize(t *testing.T) {
	assert.Equal(t, Filter{Limit: defaultLimit}, Filter{}.normalize())
	assert.Equal(t, Filter{Limit: maxLimit}, Filter{Limit: 1000, Offset: -3}.normalize())
}
