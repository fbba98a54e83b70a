package product

import "strings"

type Category string

const (
	CategoryMen    Category = "men"
	CategoryWomen  Category = "women"
	CategoryUnisex Category = "unisex"
	CategoryPack   Category = "pack"

	// CategoryAll is only meaningful as a filter selector.
	CategoryAll Category = "all"
)

// Categories lists the product categories in catalogue order.
var Categories = []Category{CategoryMen, CategoryWomen, CategoryUnisex, CategoryPack}

// ParseCategory accepts the category values and the shop's French aliases.
// An empty value selects all categories.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "tous":
		return CategoryAll, nil
	case "men", "homme":
		return CategoryMen, nil
	case "women", "femme":
		return CategoryWomen, nil
	case "unisex":
		return CategoryUnisex, nil
	case "pack":
		return CategoryPack, nil
	}
	return "", ErrInvalidCategory
}

// Label is the storefront display name.
func (c Category) Label() string {
	switch c {
	case CategoryMen:
		return "Homme"
	case CategoryWomen:
		return "Femme"
	case CategoryUnisex:
		return "Unisex"
	case CategoryPack:
		return "Pack"
	case CategoryAll:
		return "Tous"
	}
	return string(c)
}

type Badge string

const (
	BadgeFlower  Badge = "flower"
	BadgeNewYear Badge = "newyear"
)

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Category    Category `json:"category"`
	Notes       []string `json:"notes"`
	Badge       *Badge   `json:"badge,omitempty"`
}

// Gallery returns the main image followed by the extra images.
func (p Product) Gallery() []string {
	out := make([]string, 0, len(p.Images)+1)
	if p.Image != "" {
		out = append(out, p.Image)
	}
	return append(out, p.Images...)
}

// HasNote reports whether p carries note, compared case-insensitively.
func (p Product) HasNote(note string) bool {
	for _, n := range p.Notes {
		if strings.EqualFold(n, note) {
			return true
		}
	}
	return false
}
