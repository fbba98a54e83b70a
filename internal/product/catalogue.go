package product

// Catalogue is the immutable product list the storefront serves. Derived
// facets are computed once at construction.
type Catalogue struct {
	products []Product
	index    map[string]int
	maxPrice int64
	notes    []string
}

// NewCatalogue copies products; the first occurrence of a duplicated id wins.
func NewCatalogue(products []Product) *Catalogue {
	c := &Catalogue{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	seenNote := make(map[string]struct{})
	for _, p := range products {
		if _, dup := c.index[p.ID]; dup {
			continue
		}
		p.Notes = append([]string(nil), p.Notes...)
		p.Images = append([]string(nil), p.Images...)

		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)

		if p.Price > c.maxPrice {
			c.maxPrice = p.Price
		}
		for _, n := range p.Notes {
			if _, ok := seenNote[n]; ok {
				continue
			}
			seenNote[n] = struct{}{}
			c.notes = append(c.notes, n)
		}
	}
	return c
}

// All returns a copy of the products in catalogue order.
func (c *Catalogue) All() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalogue) Len() int { return len(c.products) }

func (c *Catalogue) Get(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// MaxPrice is the highest unit price in the catalogue, the upper bound of
// the price filter.
func (c *Catalogue) MaxPrice() int64 { return c.maxPrice }

// AvailableNotes lists every note once, in first-seen order.
func (c *Catalogue) AvailableNotes() []string {
	return append([]string(nil), c.notes...)
}

// Related returns up to limit other products of the same category.
func (c *Catalogue) Related(id string, limit int) []Product {
	p, ok := c.Get(id)
	if !ok || limit <= 0 {
		return []Product{}
	}

	out := make([]Product, 0, limit)
	for _, other := range c.products {
		if len(out) >= limit {
			break
		}
		if other.ID == p.ID || other.Category != p.Category {
			continue
		}
		out = append(out, other)
	}
	return out
}

// DefaultCatalogue is the shop's static collection.
func DefaultCatalogue() *Catalogue {
	return NewCatalogue(defaultProducts)
}

var defaultProducts = []Product{
	// Homme
	{
		ID:          "1",
		Name:        "R&Z Noir Intense",
		Description: "Un parfum mystérieux et envoûtant avec des notes profondes de oud et de vanille.",
		Price:       50,
		Image:       "parfum-homme.jpg",
		Category:    CategoryMen,
		Notes:       []string{"Oud", "Vanille", "Ambre"},
	},
	{
		ID:          "2",
		Name:        "R&Z Oud Prestige",
		Description: "L'essence même du luxe oriental avec du oud rare et précieux.",
		Price:       50,
		Image:       "bg-homme.jpg",
		Category:    CategoryMen,
		Notes:       []string{"Oud", "Safran", "Cuir"},
	},
	{
		ID:          "3",
		Name:        "R&Z Gentleman",
		Description: "Un parfum élégant et raffiné pour l'homme moderne et confiant.",
		Price:       50,
		Image:       "parfum-gold.jpg",
		Category:    CategoryMen,
		Notes:       []string{"Bergamote", "Lavande", "Musc"},
	},
	{
		ID:          "4",
		Name:        "R&Z Sport Fresh",
		Description: "Une fragrance fraîche et dynamique pour les esprits actifs.",
		Price:       50,
		Image:       "parfum-cream.jpg",
		Category:    CategoryMen,
		Notes:       []string{"Citron", "Menthe", "Bois de Cèdre"},
	},
	// Femme
	{
		ID:          "5",
		Name:        "R&Z Rose Élégance",
		Description: "Une fragrance florale délicate mêlant rose de Damas et jasmin.",
		Price:       50,
		Image:       "parfum-femme.jpg",
		Category:    CategoryWomen,
		Notes:       []string{"Rose", "Jasmin", "Musc Blanc"},
	},
	{
		ID:          "6",
		Name:        "R&Z Fleur de Nuit",
		Description: "Un parfum séduisant aux accents de tubéreuse et d'ylang-ylang.",
		Price:       50,
		Image:       "bg-femme.jpg",
		Category:    CategoryWomen,
		Notes:       []string{"Tubéreuse", "Ylang-Ylang", "Patchouli"},
	},
	{
		ID:          "7",
		Name:        "R&Z Velours Rose",
		Description: "Un parfum romantique et sensuel aux notes de rose et de framboise.",
		Price:       50,
		Image:       "parfum-gold-sparkle.jpg",
		Category:    CategoryWomen,
		Notes:       []string{"Rose", "Framboise", "Vanille"},
	},
	{
		ID:          "8",
		Name:        "R&Z Jardin Secret",
		Description: "Une explosion florale fraîche et féminine pour les jours ensoleillés.",
		Price:       50,
		Image:       "parfum-cream.jpg",
		Category:    CategoryWomen,
		Notes:       []string{"Pivoine", "Freesia", "Musc"},
	},
	// Unisex
	{
		ID:          "9",
		Name:        "R&Z Ambre Royal",
		Description: "Un mélange luxueux d'ambre précieux et de bois de santal.",
		Price:       50,
		Image:       "parfum-gold.jpg",
		Category:    CategoryUnisex,
		Notes:       []string{"Ambre", "Santal", "Bergamote"},
	},
	{
		ID:          "10",
		Name:        "R&Z Bois Mystique",
		Description: "Une composition boisée sophistiquée aux notes de cèdre et vétiver.",
		Price:       50,
		Image:       "parfum-gold-sparkle.jpg",
		Category:    CategoryUnisex,
		Notes:       []string{"Cèdre", "Vétiver", "Poivre Noir"},
	},
	{
		ID:          "11",
		Name:        "R&Z Essence Pure",
		Description: "Un parfum minimaliste et élégant aux notes fraîches et boisées.",
		Price:       50,
		Image:       "parfum-cream.jpg",
		Category:    CategoryUnisex,
		Notes:       []string{"Thé Blanc", "Iris", "Bois Blanc"},
	},
	{
		ID:          "12",
		Name:        "R&Z Cuir Oriental",
		Description: "Un parfum audacieux mêlant cuir précieux et épices orientales.",
		Price:       50,
		Image:       "bg-homme.jpg",
		Category:    CategoryUnisex,
		Notes:       []string{"Cuir", "Cardamome", "Oud"},
	},
	// Packs
	{
		ID:          "13",
		Name:        "Pack Trio Découverte",
		Description: "3 parfums au choix pour découvrir notre collection à prix réduit.",
		Price:       130,
		Image:       "pack-collection.jpg",
		Category:    CategoryPack,
		Notes:       []string{"3 Parfums", "Au Choix", "Économie 20 DH"},
	},
	{
		ID:          "14",
		Name:        "Pack Prestige",
		Description: "4 parfums premium pour une collection complète à prix exceptionnel.",
		Price:       160,
		Image:       "pack-collection.jpg",
		Category:    CategoryPack,
		Notes:       []string{"4 Parfums", "Au Choix", "Économie 40 DH"},
	},
	{
		ID:          "15",
		Name:        "Pack Couple",
		Description: "Un duo parfait avec 1 parfum homme et 1 parfum femme au choix.",
		Price:       90,
		Image:       "parfum-gold-sparkle.jpg",
		Category:    CategoryPack,
		Notes:       []string{"2 Parfums", "Homme + Femme", "Économie 10 DH"},
	},
	{
		ID:          "16",
		Name:        "Pack Collection Complète",
		Description: "6 parfums pour avoir toute notre gamme à un prix imbattable.",
		Price:       250,
		Image:       "pack-collection.jpg",
		Category:    CategoryPack,
		Notes:       []string{"6 Parfums", "Au Choix", "Économie 50 DH"},
	},
}
