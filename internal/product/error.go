package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSortKey  = errors.New("invalid sort key")
	ErrInvalidPrice    = errors.New("invalid price range")
)
