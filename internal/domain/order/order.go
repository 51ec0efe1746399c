package order

// Package order contains the order-submission model shared by the
// checkout coordinator and the upstream adapter.

import "github.com/storez/storefront/internal/domain/cart"

// Flat shipping fee and VAT rate applied to every non-empty order.
const (
	ShippingFee = 4.99
	VATRate     = 0.20
)

// Shipping is the required delivery address block for an order.
type Shipping struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// Summary is the derived pricing breakdown submitted with an order.
type Summary struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	VAT        float64 `json:"vat"`
	GrandTotal float64 `json:"grandTotal"`
}

// Summarize derives the pricing breakdown for a set of cart items.
// Shipping is waived for an empty cart.
func Summarize(items []cart.Item) Summary {
	subtotal := cart.Total(items)
	fee := 0.0
	if len(items) > 0 {
		fee = ShippingFee
	}
	vat := subtotal * VATRate
	return Summary{
		Subtotal:   subtotal,
		Shipping:   fee,
		VAT:        vat,
		GrandTotal: subtotal + fee + vat,
	}
}

// Draft is the order payload sent to the upstream API.
type Draft struct {
	Items    []cart.Item `json:"items"`
	Shipping Shipping    `json:"shipping"`
	Note     string      `json:"note,omitempty"`
	Summary  Summary     `json:"summary"`
}

// Confirmation is the upstream acknowledgement of a placed order.
type Confirmation struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status,omitempty"`
}
