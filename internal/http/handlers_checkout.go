package httpx

import (
	"net/http"

	"github.com/storez/storefront/internal/domain/order"
	"github.com/storez/storefront/internal/service"
)

// CheckoutHandlers provides the order-submission endpoint.
type CheckoutHandlers struct {
	Checkout *service.CheckoutService
}

// checkoutRequest is the shipping form plus an optional order note.
type checkoutRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
	Note    string `json:"note,omitempty"`
}

// checkoutResponse reports the confirmed order, the pricing that was
// submitted with it and where to send the shopper next.
type checkoutResponse struct {
	Order      order.Confirmation `json:"order"`
	Summary    order.Summary      `json:"summary"`
	RedirectTo string             `json:"redirect_to"`
}

// Submit handles POST /user/checkout. Field validation runs before any
// upstream call; the cart is cleared only after the upstream confirmed
// the order, so every failure leaves it intact for a retry.
func (h *CheckoutHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	stores := MustStores(r.Context())
	res, err := h.Checkout.PlaceOrder(r.Context(), stores.Session, stores.Cart, service.CheckoutInput{
		Shipping: order.Shipping{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			City:    req.City,
			Country: req.Country,
			Zip:     req.Zip,
		},
		Note: req.Note,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, checkoutResponse{
		Order:      res.Confirmation,
		Summary:    res.Summary,
		RedirectTo: res.RedirectTo,
	})
}
