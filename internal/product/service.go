package product

import (
	"context"
	"time"

	"rz-parfum-be/internal/logger"

	"go.uber.org/zap"
)

const relatedLimit = 4

type Service interface {
	List(ctx context.Context, filter FilterState) (*ListResult, error)
	Get(ctx context.Context, id string) (*Detail, error)
	Facets(ctx context.Context) Facets
	Catalogue() *Catalogue
}

type ListResult struct {
	Result
	Empty   bool        `json:"empty"`
	Filters FilterState `json:"filters"`
	Active  bool        `json:"active"`
}

type Detail struct {
	Product Product   `json:"product"`
	Gallery []string  `json:"gallery"`
	Related []Product `json:"related"`
}

// Facets feeds the filter panel. Labels names every entry of Categories.
type Facets struct {
	MaxPrice   int64               `json:"max_price"`
	Notes      []string            `json:"notes"`
	Categories []Category          `json:"categories"`
	Labels     map[Category]string `json:"category_labels"`
	SortKeys   []SortKey           `json:"sort_keys"`
}

type service struct {
	catalogue *Catalogue
}

func NewService(catalogue *Catalogue) Service {
	return &service{catalogue: catalogue}
}

func (s *service) Catalogue() *Catalogue { return s.catalogue }

func (s *service) List(ctx context.Context, filter FilterState) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)
	start := time.Now()

	/* ---------- INPUT NORMALIZATION ---------- */

	if filter.Category == "" {
		filter.Category = CategoryAll
	}
	if filter.Sort == "" {
		filter.Sort = SortDefault
	}
	if filter.Notes == nil {
		filter.Notes = []string{}
	}
	maxPrice := s.catalogue.MaxPrice()
	filter = filter.ClampPriceRange(maxPrice)

	log.Debug("list products requested",
		zap.String("category", string(filter.Category)),
		zap.Int64("min_price", filter.MinPrice),
		zap.Int64("max_price", filter.MaxPrice),
		zap.Strings("notes", filter.Notes),
		zap.String("search", filter.Search),
		zap.String("sort", string(filter.Sort)),
	)

	res := Apply(s.catalogue.All(), filter)

	log.Info("list products success",
		zap.Int("count", res.Count),
		zap.Duration("duration", time.Since(start)),
	)

	return &ListResult{
		Result:  res,
		Empty:   res.IsEmpty(),
		Filters: filter,
		Active:  filter.HasActiveFilters(maxPrice),
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Detail, error) {
	p, ok := s.catalogue.Get(id)
	if !ok {
		logger.FromCtx(ctx).Debug("product not found", zap.String("product_id", id))
		return nil, ErrProductNotFound
	}
	return &Detail{
		Product: p,
		Gallery: p.Gallery(),
		Related: s.catalogue.Related(id, relatedLimit),
	}, nil
}

func (s *service) Facets(ctx context.Context) Facets {
	cats := append([]Category{CategoryAll}, Categories...)
	labels := make(map[Category]string, len(cats))
	for _, c := range cats {
		labels[c] = c.Label()
	}
	return Facets{
		MaxPrice:   s.catalogue.MaxPrice(),
		Notes:      s.catalogue.AvailableNotes(),
		Categories: cats,
		Labels:     labels,
		SortKeys:   append([]SortKey(nil), SortKeys...),
	}
}
