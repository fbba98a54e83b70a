package review

import "errors"

var (
	ErrNameRequired    = errors.New("reviewer name is required")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrProductNotFound = errors.New("product not found")
)
