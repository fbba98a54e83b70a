package graph

import (
	"context"
	"encoding/json"
	"strings"

	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/realtime"
	"rz-parfum-be/internal/review"
)

func (r *queryResolver) Products(ctx context.Context, filter *model.ProductFilter) (*model.ProductList, error) {
	f, err := toFilterState(filter, r.ProductSvc.Catalogue().MaxPrice())
	if err != nil {
		return nil, err
	}
	res, err := r.ProductSvc.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &model.ProductList{
		Products: toGraphQLProducts(res.Products),
		Count:    res.Count,
		Empty:    res.Empty,
		Active:   res.Active,
	}, nil
}

func (r *queryResolver) Product(ctx context.Context, id string) (*model.ProductDetail, error) {
	d, err := r.ProductSvc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := toGraphQLProduct(d.Product)
	if len(d.Gallery) > 0 {
		p.Gallery = d.Gallery
	}
	return &model.ProductDetail{Product: p, Related: toGraphQLProducts(d.Related)}, nil
}

func (r *queryResolver) Facets(ctx context.Context) (*model.Facets, error) {
	f := r.ProductSvc.Facets(ctx)

	cats := make([]*model.CategoryFacet, 0, len(f.Categories))
	for _, c := range f.Categories {
		label, ok := f.Labels[c]
		if !ok {
			label = c.Label()
		}
		cats = append(cats, &model.CategoryFacet{Value: toGraphQLCategory(c), Label: label})
	}
	keys := make([]model.SortKey, 0, len(f.SortKeys))
	for _, k := range f.SortKeys {
		keys = append(keys, toGraphQLSortKey(k))
	}
	return &model.Facets{
		MaxPrice:   int(f.MaxPrice),
		Notes:      f.Notes,
		Categories: cats,
		SortKeys:   keys,
	}, nil
}

func (r *queryResolver) Reviews(ctx context.Context, productID string) (*model.ProductReviews, error) {
	if _, ok := r.ProductSvc.Catalogue().Get(productID); !ok {
		return nil, product.ErrProductNotFound
	}
	list, err := r.ReviewSvc.List(ctx, productID)
	if err != nil {
		return nil, err
	}
	s := review.Summarize(list)
	return &model.ProductReviews{
		Reviews: toGraphQLReviews(list),
		Summary: &model.ReviewSummary{Count: s.Count, Average: s.Average, Stars: s.Stars},
	}, nil
}

func (r *mutationResolver) SubmitReview(ctx context.Context, productID string, input model.ReviewInput) (*model.Review, error) {
	in := review.SubmitInput{ProductID: productID, Name: input.Name, Rating: input.Rating}
	if input.Comment != nil {
		in.Comment = *input.Comment
	}
	rv, err := r.ReviewSvc.Submit(ctx, in)
	if err != nil {
		return nil, err
	}
	return toGraphQLReview(rv), nil
}

// ReviewAdded streams the reviews published for productID from now on.
func (r *subscriptionResolver) ReviewAdded(ctx context.Context, productID string) (<-chan *model.Review, error) {
	if _, ok := r.ProductSvc.Catalogue().Get(productID); !ok {
		return nil, product.ErrProductNotFound
	}
	return relay(ctx, r.Hub, realtime.ReviewsTopic(productID), func(ev realtime.Event) (*model.Review, bool) {
		if ev.Type != realtime.EventInsert {
			return nil, false
		}
		var rv review.Review
		if err := json.Unmarshal(ev.Payload, &rv); err != nil {
			return nil, false
		}
		return toGraphQLReview(&rv), true
	}), nil
}

func toGraphQLReview(rv *review.Review) *model.Review {
	var comment *string
	if rv.Comment != nil && strings.TrimSpace(*rv.Comment) != "" {
		c := *rv.Comment
		comment = &c
	}
	return &model.Review{
		ID:           rv.ID.String(),
		ProductID:    rv.ProductID,
		ReviewerName: rv.ReviewerName,
		Rating:       rv.Rating,
		Comment:      comment,
		CreatedAt:    rv.CreatedAt.Format(timeLayout),
	}
}

func toGraphQLReviews(list []*review.Review) []*model.Review {
	out := make([]*model.Review, 0, len(list))
	for _, rv := range list {
		out = append(out, toGraphQLReview(rv))
	}
	return out
}
