package cart

import "rz-parfum-be/internal/product"

// MaxQuantity bounds a single line. Larger quantities are clamped by the
// cart and rejected by callers validating input.
const MaxQuantity = 99

// ValidQuantity reports whether n can be requested for a line.
func ValidQuantity(n int) bool { return n >= 1 && n <= MaxQuantity }

type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is an immutable list of lines, at most one per product id, each with
// a quantity between 1 and MaxQuantity. Operations return a new Cart and leave the receiver intact.
type Cart struct {
	lines []Line
}

// New builds a cart from lines, merging duplicates and dropping lines whose
// quantity is below one.
func New(lines ...Line) Cart {
	c := Cart{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		c = c.Add(l.Product, l.Quantity)
	}
	return c
}

func (c Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() []Line {
	return append(make([]Line, 0, len(c.lines)+1), c.lines...)
}

// AddItem increments the product's quantity, or appends a new line of one.
func (c Cart) AddItem(p product.Product) Cart {
	return c.Add(p, 1)
}

// Add raises the product's quantity by n, capped at MaxQuantity. A
// non-positive n leaves the cart unchanged.
func (c Cart) Add(p product.Product, n int) Cart {
	if n < 1 {
		return c
	}
	lines := c.clone()
	if i := c.indexOf(p.ID); i >= 0 {
		lines[i].Quantity = capQuantity(lines[i].Quantity, n)
		return Cart{lines: lines}
	}
	return Cart{lines: append(lines, Line{Product: p, Quantity: min(n, MaxQuantity)})}
}

// capQuantity adds without overflowing: both operands are positive and the
// current one never exceeds MaxQuantity.
func capQuantity(current, n int) int {
	if n >= MaxQuantity-current {
		return MaxQuantity
	}
	return current + n
}

// UpdateQuantity sets the line's quantity, clamped to MaxQuantity; below one
// removes the line. Unknown product ids leave the cart unchanged.
func (c Cart) UpdateQuantity(productID string, qty int) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c
	}
	if qty < 1 {
		return c.RemoveItem(productID)
	}
	lines := c.clone()
	lines[i].Quantity = min(qty, MaxQuantity)
	return Cart{lines: lines}
}

// Subtract takes the quantities of lines off the cart, dropping lines that
// reach zero. It settles a checked out snapshot against a cart that may
// have changed in the meantime.
func (c Cart) Subtract(lines []Line) Cart {
	out := c
	for _, l := range lines {
		out = out.UpdateQuantity(l.Product.ID, out.Quantity(l.Product.ID)-l.Quantity)
	}
	return out
}

func (c Cart) RemoveItem(productID string) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c
	}
	lines := c.clone()
	return Cart{lines: append(lines[:i], lines[i+1:]...)}
}

func (c Cart) Clear() Cart { return Cart{} }

// Lines returns a copy of the lines in insertion order.
func (c Cart) Lines() []Line {
	return append([]Line{}, c.lines...)
}

func (c Cart) Len() int { return len(c.lines) }

func (c Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}

// ItemCount is the total number of units, shown on the cart badge.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
