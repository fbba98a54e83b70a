package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// AllStatuses is the order the dashboard presents statuses in.
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var statusLabels = map[Status]string{
	StatusPending:   "En attente",
	StatusConfirmed: "Confirmée",
	StatusShipped:   "Expédiée",
	StatusDelivered: "Livrée",
	StatusCancelled: "Annulée",
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the French name shown on the admin dashboard.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Item is a snapshot of a cart line at submission time.
type Item struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

type Order struct {
	ID              uuid.UUID `json:"id"`
	Reference       string    `json:"reference"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerCity    string    `json:"customer_city"`
	CustomerAddress string    `json:"customer_address"`
	Items           []Item    `json:"items"`
	Subtotal        int64     `json:"subtotal"`
	DeliveryFee     int64     `json:"delivery_fee"`
	Total           int64     `json:"total"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks the customer block, the items and that
// subtotal + delivery fee = total.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerName) == "" ||
		strings.TrimSpace(o.CustomerPhone) == "" ||
		strings.TrimSpace(o.CustomerCity) == "" ||
		strings.TrimSpace(o.CustomerAddress) == "" {
		return ErrMissingCustomer
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}

	var subtotal int64
	for _, it := range o.Items {
		if it.Quantity < 1 || it.Price < 0 {
			return ErrInvalidItem
		}
		subtotal += it.LineTotal()
	}

	if subtotal != o.Subtotal || o.DeliveryFee < 0 || o.Subtotal+o.DeliveryFee != o.Total {
		return ErrTotalsMismatch
	}
	return nil
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Filter narrows the admin listing. A zero Status lists every order.
type Filter struct {
	Status Status
	Limit  int
	Offset int
}

func (f Filter) normalize() Filter {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Stats are the dashboard counters.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Delivered int `json:"delivered"`
}
