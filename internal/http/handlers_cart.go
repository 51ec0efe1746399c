package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/domain/order"
)

// CartHandlers provides HTTP handlers for the per browser cart. The
// cart is open to anonymous shoppers; only checkout requires a verified
// identity.
type CartHandlers struct{}

// cartResponse is the full cart view returned after every read or
// mutation. The total is always recomputed server side from the lines.
type cartResponse struct {
	Items   []cart.Item   `json:"items"`
	Count   int           `json:"count"`
	Summary order.Summary `json:"summary"`
}

func writeCart(w http.ResponseWriter, r *http.Request, status int) {
	stores := MustStores(r.Context())
	items := stores.Cart.Items(r.Context())
	if items == nil {
		items = []cart.Item{}
	}
	WriteJSON(w, status, cartResponse{
		Items:   items,
		Count:   len(items),
		Summary: order.Summarize(items),
	})
}

// List handles GET /cart/items.
func (h *CartHandlers) List(w http.ResponseWriter, r *http.Request) {
	writeCart(w, r, http.StatusOK)
}

// Add handles POST /cart/items. Adding a product already in the cart
// bumps its quantity instead of creating a second line.
func (h *CartHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var p cart.Product
	if !DecodeJSON(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.ID) == "" {
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "validation", Field: "id", Err: errors.New("id is required")})
		return
	}
	if p.Price < 0 {
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "validation", Field: "price", Err: errors.New("price cannot be negative")})
		return
	}

	stores := MustStores(r.Context())
	stores.Cart.AddItem(r.Context(), p)
	writeCart(w, r, http.StatusOK)
}

// quantityRequest is the body of a quantity update.
type quantityRequest struct {
	Quantity int `json:"qty"`
}

// UpdateQuantity handles PUT /cart/items/{productID}. Quantities below
// one are clamped to one; dropping a line requires an explicit delete.
func (h *CartHandlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")
	var req quantityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	stores := MustStores(r.Context())
	stores.Cart.UpdateQuantity(r.Context(), productID, req.Quantity)
	writeCart(w, r, http.StatusOK)
}

// Remove handles DELETE /cart/items/{productID}.
func (h *CartHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	stores := MustStores(r.Context())
	stores.Cart.RemoveItem(r.Context(), r.PathValue("productID"))
	writeCart(w, r, http.StatusOK)
}

// Clear handles DELETE /cart/items.
func (h *CartHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	stores := MustStores(r.Context())
	stores.Cart.Clear(r.Context())
	writeCart(w, r, http.StatusOK)
}
