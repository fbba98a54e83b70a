package cart

const (
	DefaultDeliveryFee           int64 = 15
	DefaultFreeDeliveryThreshold int64 = 300
)

// Pricing is the delivery rule: a flat fee below the threshold, waived at
// or above it.
type Pricing struct {
	DeliveryFee           int64 `json:"delivery_fee"`
	FreeDeliveryThreshold int64 `json:"free_delivery_threshold"`
}

func DefaultPricing() Pricing {
	return Pricing{
		DeliveryFee:           DefaultDeliveryFee,
		FreeDeliveryThreshold: DefaultFreeDeliveryThreshold,
	}
}

// IsFreeDelivery reports whether a non-empty cart ships for free.
func (p Pricing) IsFreeDelivery(c Cart) bool {
	return !c.IsEmpty() && c.Subtotal() >= p.FreeDeliveryThreshold
}

// DeliveryFeeFor is zero for an empty cart or once the threshold is reached.
func (p Pricing) DeliveryFeeFor(c Cart) int64 {
	if c.IsEmpty() || p.IsFreeDelivery(c) {
		return 0
	}
	return p.DeliveryFee
}

// Total is zero for an empty cart, subtotal plus delivery otherwise.
func (p Pricing) Total(c Cart) int64 {
	if c.IsEmpty() {
		return 0
	}
	return c.Subtotal() + p.DeliveryFeeFor(c)
}

// AmountToFreeDelivery is what is left to spend before the fee is waived.
func (p Pricing) AmountToFreeDelivery(c Cart) int64 {
	return max(p.FreeDeliveryThreshold-c.Subtotal(), 0)
}

// FreeDeliveryProgress is the subtotal as a percentage of the threshold,
// capped at 100.
func (p Pricing) FreeDeliveryProgress(c Cart) int {
	if p.FreeDeliveryThreshold <= 0 {
		return 100
	}
	return int(min(c.Subtotal()*100/p.FreeDeliveryThreshold, 100))
}

type Summary struct {
	Lines                []Line `json:"lines"`
	ItemCount            int    `json:"item_count"`
	Subtotal             int64  `json:"subtotal"`
	DeliveryFee          int64  `json:"delivery_fee"`
	Total                int64  `json:"total"`
	FreeDelivery         bool   `json:"free_delivery"`
	AmountToFreeDelivery int64  `json:"amount_to_free_delivery"`
	FreeDeliveryProgress int    `json:"free_delivery_progress"`
}

// Summarize derives every displayed amount from one subtotal of c.
func (p Pricing) Summarize(c Cart) Summary {
	subtotal := c.Subtotal()
	s := Summary{
		Lines:                c.Lines(),
		ItemCount:            c.ItemCount(),
		Subtotal:             subtotal,
		AmountToFreeDelivery: max(p.FreeDeliveryThreshold-subtotal, 0),
		FreeDeliveryProgress: 100,
	}
	if p.FreeDeliveryThreshold > 0 {
		s.FreeDeliveryProgress = int(min(subtotal*100/p.FreeDeliveryThreshold, 100))
	}
	if c.IsEmpty() {
		return s
	}
	s.FreeDelivery = subtotal >= p.FreeDeliveryThreshold
	if !s.FreeDelivery {
		s.DeliveryFee = p.DeliveryFee
	}
	s.Total = subtotal + s.DeliveryFee
	return s
}
