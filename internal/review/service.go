package review

import (
	"context"
	"strings"

	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/realtime"

	"go.uber.org/zap"
)

// ProductLookup resolves catalogue ids. *product.Catalogue satisfies it.
type ProductLookup interface {
	Get(id string) (product.Product, bool)
}

type Publisher interface {
	Publish(ctx context.Context, event realtime.Event)
}

type Recorder interface {
	ReviewSubmitted()
}

type Service interface {
	Submit(ctx context.Context, in SubmitInput) (*Review, error)
	List(ctx context.Context, productID string) ([]*Review, error)
	Summary(ctx context.Context, productID string) (Summary, error)
}

type service struct {
	repo     Repository
	products ProductLookup
	pub      Publisher
	recorder Recorder
}

// NewService wires the review service. pub and rec may be nil.
func NewService(repo Repository, products ProductLookup, pub Publisher, rec Recorder) Service {
	return &service{repo: repo, products: products, pub: pub, recorder: rec}
}

// normalize applies the form defaults and rules to in.
func normalize(in SubmitInput) (*Review, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	rating := DefaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}

	rv := &Review{
		ProductID:    in.ProductID,
		ReviewerName: name,
		Rating:       rating,
	}
	if c := strings.TrimSpace(in.Comment); c != "" {
		rv.Comment = &c
	}
	return rv, nil
}

func (s *service) Submit(ctx context.Context, in SubmitInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitReview"),
		zap.String("product_id", in.ProductID),
	)

	if _, ok := s.products.Get(in.ProductID); !ok {
		return nil, ErrProductNotFound
	}

	rv, err := normalize(in)
	if err != nil {
		log.Debug("invalid review", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Insert(ctx, rv); err != nil {
		return nil, err
	}

	log.Info("review submitted", zap.Int("rating", rv.Rating))
	if s.recorder != nil {
		s.recorder.ReviewSubmitted()
	}
	if s.pub != nil {
		if ev, err := realtime.NewEvent(realtime.ReviewsTopic(rv.ProductID), realtime.EventInsert, rv); err == nil {
			s.pub.Publish(ctx, ev)
		}
	}
	return rv, nil
}

func (s *service) List(ctx context.Context, productID string) ([]*Review, error) {
	if _, ok := s.products.Get(productID); !ok {
		return nil, ErrProductNotFound
	}
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Summary(ctx context.Context, productID string) (Summary, error) {
	reviews, err := s.List(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(reviews), nil
}
