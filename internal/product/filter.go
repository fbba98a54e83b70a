package product

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPopular   SortKey = "popular"
)

var SortKeys = []SortKey{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortPopular}

func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortDefault, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrInvalidSortKey
}

// collationTag is the storefront locale used for name ordering.
var collationTag = language.French

// popularity is a fixed category precedence, not a computed metric.
var popularity = map[Category]int{
	CategoryPack:   0,
	CategoryMen:    1,
	CategoryWomen:  2,
	CategoryUnisex: 3,
}

type FilterState struct {
	Category Category `json:"category"`
	MinPrice int64    `json:"min_price"`
	MaxPrice int64    `json:"max_price"`
	Notes    []string `json:"notes"`
	Search   string   `json:"search"`
	Sort     SortKey  `json:"sort"`
}

// DefaultFilter selects the whole catalogue in input order.
func DefaultFilter(maxPrice int64) FilterState {
	return FilterState{
		Category: CategoryAll,
		MinPrice: 0,
		MaxPrice: maxPrice,
		Notes:    []string{},
		Sort:     SortDefault,
	}
}

// ClampPriceRange keeps both bounds inside [0, maxPrice]. An inverted range
// collapses onto its upper bound.
func (f FilterState) ClampPriceRange(maxPrice int64) FilterState {
	clamp := func(v int64) int64 {
		return min(max(v, 0), maxPrice)
	}
	f.MinPrice = clamp(f.MinPrice)
	f.MaxPrice = clamp(f.MaxPrice)
	if f.MinPrice > f.MaxPrice {
		f.MinPrice = f.MaxPrice
	}
	return f
}

// ToggleNote adds note to the selection, or removes it when already selected.
func (f FilterState) ToggleNote(note string) FilterState {
	notes := make([]string, 0, len(f.Notes)+1)
	found := false
	for _, n := range f.Notes {
		if n == note {
			found = true
			continue
		}
		notes = append(notes, n)
	}
	if !found {
		notes = append(notes, note)
	}
	f.Notes = notes
	return f
}

// HasActiveFilters reports whether f differs from DefaultFilter(maxPrice).
func (f FilterState) HasActiveFilters(maxPrice int64) bool {
	return (f.Category != "" && f.Category != CategoryAll) ||
		f.MinPrice > 0 ||
		f.MaxPrice < maxPrice ||
		len(f.Notes) > 0 ||
		strings.TrimSpace(f.Search) != "" ||
		(f.Sort != "" && f.Sort != SortDefault)
}

type Result struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// IsEmpty distinguishes "no product matched" from a result not computed yet.
func (r Result) IsEmpty() bool { return r.Count == 0 }

// Apply runs search, category, price, notes and sort over products. The
// input slice is never reordered.
//
// Both price bounds are taken as given, so a zero MaxPrice admits free
// products only. Start from DefaultFilter, or clamp with ClampPriceRange,
// to cover the whole catalogue.
func Apply(products []Product, f FilterState) Result {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if p.Price < f.MinPrice || p.Price > f.MaxPrice {
			continue
		}
		if len(f.Notes) > 0 && !matchesAnyNote(p, f.Notes) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return Result{Products: out, Count: len(out)}
}

func matchesSearch(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, n := range p.Notes {
		if strings.Contains(strings.ToLower(n), query) {
			return true
		}
	}
	return false
}

func matchesAnyNote(p Product, notes []string) bool {
	for _, n := range notes {
		if p.HasNote(n) {
			return true
		}
	}
	return false
}

func sortProducts(ps []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortNameAsc, SortNameDesc:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(collationTag)
		desc := key == SortNameDesc
		slices.SortStableFunc(ps, func(a, b Product) int {
			if desc {
				return col.CompareString(b.Name, a.Name)
			}
			return col.CompareString(a.Name, b.Name)
		})
	case SortPopular:
		slices.SortStableFunc(ps, func(a, b Product) int {
			return rank(a.Category) - rank(b.Category)
		})
	}
}

func rank(c Category) int {
	if r, ok := popularity[c]; ok {
		return r
	}
	return len(popularity)
}
