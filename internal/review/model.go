package review

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = MaxRating
)

type Review struct {
	ID           uuid.UUID `json:"id"`
	ProductID    string    `json:"product_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmitInput is the review form. A nil Rating means the default.
type SubmitInput struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Rating    *int   `json:"rating"`
	Comment   string `json:"comment"`
}

type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	// Stars is the average rounded to whole stars.
	Stars int `json:"stars"`
}

// Summarize averages ratings, rounded to one decimal.
func Summarize(reviews []*Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return Summary{
		Count:   len(reviews),
		Average: math.Round(avg*10) / 10,
		Stars:   int(math.Round(avg)),
	}
}
