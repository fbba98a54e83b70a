package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNoItems         = errors.New("order has no items")
	ErrInvalidItem     = errors.New("order item must have a positive quantity and a non-negative price")
	ErrMissingCustomer = errors.New("customer name, phone, city and address are required")
	ErrTotalsMismatch  = errors.New("order totals do not add up")
)
