package cart

// Package cart contains the pure line-item model for the shopping cart.
// Persistence and mutation orchestration live in internal/service.

import "encoding/json"

// Item is one cart line. ProductID is the unique key within a cart.
// The JSON field names match the snapshot format persisted by the store.
type Item struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"price"`
	Quantity   int     `json:"qty"`
	ImageRef   string  `json:"image,omitempty"`
	SupplierID string  `json:"supplierId,omitempty"`
}

// Product is the subset of a catalog record the cart needs when a
// shopper adds it.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	SupplierID string  `json:"supplierId,omitempty"`
}

// NewItem builds a single-quantity line from a product.
func NewItem(p Product) Item {
	return Item{
		ProductID:  p.ID,
		Name:       p.Name,
		UnitPrice:  p.Price,
		Quantity:   1,
		ImageRef:   p.Image,
		SupplierID: p.SupplierID,
	}
}

// Total recomputes the cart total from scratch. It is never cached.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// Normalize drops malformed lines and collapses duplicate product IDs,
// summing their quantities. Order of first appearance is preserved.
// It is applied to persisted snapshots so a corrupt or hand-edited
// snapshot can never violate the one-line-per-product invariant.
func Normalize(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.UnitPrice < 0 {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if i, ok := index[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, it)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DecodeSnapshot parses a persisted JSON snapshot. Missing or malformed
// data yields an empty cart, never an error.
func DecodeSnapshot(data []byte) []Item {
	if len(data) == 0 {
		return nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return Normalize(items)
}

// EncodeSnapshot serializes items as the persisted JSON array format.
func EncodeSnapshot(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}
