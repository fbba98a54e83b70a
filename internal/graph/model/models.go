// Package model holds the GraphQL shapes of schema.graphqls. JSON names
// follow the schema field names.
package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Category string

type SortKey string

type OrderStatus string

type ChangeType string

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int      `json:"price"`
	Image         string   `json:"image"`
	Gallery       []string `json:"gallery"`
	Category      Category `json:"category"`
	CategoryLabel string   `json:"categoryLabel"`
	Notes         []string `json:"notes"`
	Badge         *string  `json:"badge"`
}

type ProductFilter struct {
	Category *Category `json:"category"`
	MinPrice *int      `json:"minPrice"`
	MaxPrice *int      `json:"maxPrice"`
	Notes    []string  `json:"notes"`
	Search   *string   `json:"search"`
	Sort     *SortKey  `json:"sort"`
}

type ProductList struct {
	Products []*Product `json:"products"`
	Count    int        `json:"count"`
	Empty    bool       `json:"empty"`
	Active   bool       `json:"active"`
}

type ProductDetail struct {
	Product *Product   `json:"product"`
	Related []*Product `json:"related"`
}

type CategoryFacet struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

type Facets struct {
	MaxPrice   int              `json:"maxPrice"`
	Notes      []string         `json:"notes"`
	Categories []*CategoryFacet `json:"categories"`
	SortKeys   []SortKey        `json:"sortKeys"`
}

type CartLine struct {
	Product   *Product `json:"product"`
	Quantity  int      `json:"quantity"`
	LineTotal int      `json:"lineTotal"`
}

type Cart struct {
	Lines                []*CartLine `json:"lines"`
	ItemCount            int         `json:"itemCount"`
	Subtotal             int         `json:"subtotal"`
	DeliveryFee          int         `json:"deliveryFee"`
	Total                int         `json:"total"`
	FreeDelivery         bool        `json:"freeDelivery"`
	AmountToFreeDelivery int         `json:"amountToFreeDelivery"`
	FreeDeliveryProgress int         `json:"freeDeliveryProgress"`
}

type AddToCartInput struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type CompareRow struct {
	Product *Product `json:"product"`
	Has     []bool   `json:"has"`
}

type Comparison struct {
	Items  []*Product    `json:"items"`
	Count  int           `json:"count"`
	CanAdd bool          `json:"canAdd"`
	Notes  []string      `json:"notes"`
	Rows   []*CompareRow `json:"rows"`
}

type CompareResult struct {
	Added      bool        `json:"added"`
	Comparison *Comparison `json:"comparison"`
}

type Wishlist struct {
	Items []*Product `json:"items"`
	Count int        `json:"count"`
}

type DeliveryInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
}

type SavedDeliveryInfo struct {
	Saved bool          `json:"saved"`
	Info  *DeliveryInfo `json:"info"`
}

type CheckoutResult struct {
	OrderID     string `json:"orderId"`
	Reference   string `json:"reference"`
	WhatsappURL string `json:"whatsappUrl"`
	Message     string `json:"message"`
	Cart        *Cart  `json:"cart"`
}

type Review struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ReviewerName string  `json:"reviewerName"`
	Rating       int     `json:"rating"`
	Comment      *string `json:"comment"`
	CreatedAt    string  `json:"createdAt"`
}

type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Stars   int     `json:"stars"`
}

type ProductReviews struct {
	Reviews []*Review      `json:"reviews"`
	Summary *ReviewSummary `json:"summary"`
}

type ReviewInput struct {
	Name    string  `json:"name"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CredentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"lineTotal"`
}

type Order struct {
	ID              string       `json:"id"`
	Reference       string       `json:"reference"`
	CustomerName    string       `json:"customerName"`
	CustomerPhone   string       `json:"customerPhone"`
	CustomerCity    string       `json:"customerCity"`
	CustomerAddress string       `json:"customerAddress"`
	Items           []*OrderItem `json:"items"`
	Subtotal        int          `json:"subtotal"`
	DeliveryFee     int          `json:"deliveryFee"`
	Total           int          `json:"total"`
	Status          OrderStatus  `json:"status"`
	StatusLabel     string       `json:"statusLabel"`
	ContactURL      string       `json:"contactUrl"`
	CreatedAt       string       `json:"createdAt"`
	UpdatedAt       string       `json:"updatedAt"`
}

type OrderList struct {
	Orders []*Order `json:"orders"`
	Count  int      `json:"count"`
}

type OrderStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Delivered int `json:"delivered"`
}

type OrderEvent struct {
	Type  ChangeType `json:"type"`
	Order *Order     `json:"order"`
}
