// Package compare holds the side-by-side product selection. It is
// independent of the cart and the wishlist.
package compare

import "rz-parfum-be/internal/product"

const MaxItems = 3

// Set is an ordered, duplicate-free selection of at most MaxItems products.
type Set struct {
	items []product.Product
}

// Add appends p and reports true, or returns the set unchanged and false
// when it is full or already holds p.
func (s Set) Add(p product.Product) (Set, bool) {
	if len(s.items) >= MaxItems || s.IsMember(p.ID) {
		return s, false
	}
	items := append(make([]product.Product, 0, len(s.items)+1), s.items...)
	return Set{items: append(items, p)}, true
}

func (s Set) Remove(productID string) Set {
	items := make([]product.Product, 0, len(s.items))
	for _, p := range s.items {
		if p.ID != productID {
			items = append(items, p)
		}
	}
	if len(items) == len(s.items) {
		return s
	}
	return Set{items: items}
}

func (s Set) Clear() Set { return Set{} }

func (s Set) IsMember(productID string) bool {
	for _, p := range s.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (s Set) Items() []product.Product {
	return append([]product.Product{}, s.items...)
}

func (s Set) Len() int { return len(s.items) }

func (s Set) CanAdd() bool { return len(s.items) < MaxItems }

type MatrixRow struct {
	Product product.Product `json:"product"`
	Has     []bool          `json:"has"`
}

// Matrix is the note-by-product grid of the comparison view.
type Matrix struct {
	Notes []string    `json:"notes"`
	Rows  []MatrixRow `json:"rows"`
}

// BuildMatrix lists the union of notes of the compared products in
// first-seen order, and for each product which of them it carries.
func BuildMatrix(s Set) Matrix {
	m := Matrix{Notes: []string{}, Rows: make([]MatrixRow, 0, len(s.items))}

	seen := make(map[string]struct{})
	for _, p := range s.items {
		for _, n := range p.Notes {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			m.Notes = append(m.Notes, n)
		}
	}

	for _, p := range s.items {
		row := MatrixRow{Product: p, Has: make([]bool, len(m.Notes))}
		for i, n := range m.Notes {
			for _, pn := range p.Notes {
				if pn == n {
					row.Has[i] = true
					break
				}
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}
