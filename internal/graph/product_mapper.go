package graph

import (
	"strings"

	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/compare"
	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/wishlist"
)

func toGraphQLCategory(c product.Category) model.Category {
	return model.Category(strings.ToUpper(string(c)))
}

func fromGraphQLCategory(c model.Category) (product.Category, error) {
	return product.ParseCategory(strings.ToLower(string(c)))
}

func toGraphQLSortKey(k product.SortKey) model.SortKey {
	return model.SortKey(strings.ToUpper(strings.ReplaceAll(string(k), "-", "_")))
}

func fromGraphQLSortKey(k model.SortKey) (product.SortKey, error) {
	return product.ParseSortKey(strings.ReplaceAll(strings.ToLower(string(k)), "_", "-"))
}

func toGraphQLProduct(p product.Product) *model.Product {
	var badge *string
	if p.Badge != nil {
		b := string(*p.Badge)
		badge = &b
	}
	notes := p.Notes
	if notes == nil {
		notes = []string{}
	}
	return &model.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         int(p.Price),
		Image:         p.Image,
		Gallery:       p.Gallery(),
		Category:      toGraphQLCategory(p.Category),
		CategoryLabel: p.Category.Label(),
		Notes:         notes,
		Badge:         badge,
	}
}

func toGraphQLProducts(ps []product.Product) []*model.Product {
	out := make([]*model.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toGraphQLProduct(p))
	}
	return out
}

// toFilterState converts the filter input. Unset bounds select the whole
// price range of the catalogue.
func toFilterState(in *model.ProductFilter, maxPrice int64) (product.FilterState, error) {
	f := product.DefaultFilter(maxPrice)
	if in == nil {
		return f, nil
	}

	if in.Category != nil {
		cat, err := fromGraphQLCategory(*in.Category)
		if err != nil {
			return f, err
		}
		f.Category = cat
	}
	if in.Sort != nil {
		key, err := fromGraphQLSortKey(*in.Sort)
		if err != nil {
			return f, err
		}
		f.Sort = key
	}
	if in.MinPrice != nil {
		f.MinPrice = int64(*in.MinPrice)
	}
	if in.MaxPrice != nil {
		f.MaxPrice = int64(*in.MaxPrice)
	}
	if in.Notes != nil {
		f.Notes = append([]string{}, in.Notes...)
	}
	if in.Search != nil {
		f.Search = strings.TrimSpace(*in.Search)
	}
	return f, nil
}

func toGraphQLCart(s cart.Summary) *model.Cart {
	lines := make([]*model.CartLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, &model.CartLine{
			Product:   toGraphQLProduct(l.Product),
			Quantity:  l.Quantity,
			LineTotal: int(l.LineTotal()),
		})
	}
	return &model.Cart{
		Lines:                lines,
		ItemCount:            s.ItemCount,
		Subtotal:             int(s.Subtotal),
		DeliveryFee:          int(s.DeliveryFee),
		Total:                int(s.Total),
		FreeDelivery:         s.FreeDelivery,
		AmountToFreeDelivery: int(s.AmountToFreeDelivery),
		FreeDeliveryProgress: s.FreeDeliveryProgress,
	}
}

func toGraphQLComparison(s compare.Set) *model.Comparison {
	m := compare.BuildMatrix(s)
	rows := make([]*model.CompareRow, 0, len(m.Rows))
	for _, r := range m.Rows {
		rows = append(rows, &model.CompareRow{Product: toGraphQLProduct(r.Product), Has: r.Has})
	}
	return &model.Comparison{
		Items:  toGraphQLProducts(s.Items()),
		Count:  s.Len(),
		CanAdd: s.CanAdd(),
		Notes:  m.Notes,
		Rows:   rows,
	}
}

func toGraphQLWishlist(wl wishlist.Wishlist) *model.Wishlist {
	return &model.Wishlist{Items: toGraphQLProducts(wl.Items()), Count: wl.Len()}
}
