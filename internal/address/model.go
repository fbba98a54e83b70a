package address

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrPhoneRequired   = errors.New("phone is required")
	ErrCityRequired    = errors.New("city is required")
	ErrAddressRequired = errors.New("address is required")
)

// DeliveryInfo is the customer block of the checkout form.
type DeliveryInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// Normalize trims every field and strips whitespace inside the phone number.
func (d DeliveryInfo) Normalize() DeliveryInfo {
	return DeliveryInfo{
		Name:    strings.TrimSpace(d.Name),
		Phone:   strings.Join(strings.Fields(d.Phone), ""),
		City:    strings.TrimSpace(d.City),
		Address: strings.TrimSpace(d.Address),
	}
}

// Validate reports the first missing field of the normalized form.
func (d DeliveryInfo) Validate() error {
	n := d.Normalize()
	switch {
	case n.Name == "":
		return ErrNameRequired
	case n.Phone == "":
		return ErrPhoneRequired
	case n.City == "":
		return ErrCityRequired
	case n.Address == "":
		return ErrAddressRequired
	}
	return nil
}

func (d DeliveryInfo) IsZero() bool {
	return d == DeliveryInfo{}
}
