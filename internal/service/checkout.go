package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/domain/order"
	apperrors "github.com/storez/storefront/internal/errors"
	"github.com/storez/storefront/internal/ports"
)

// CheckoutService turns a session's cart into an upstream order. It
// validates shipping details before any network call, and only empties
// the cart after the upstream confirmed the order, so a failed attempt
// leaves the cart ready for a retry.
type CheckoutService struct {
	orders ports.OrderPlacer
	logger *slog.Logger
}

func NewCheckoutService(orders ports.OrderPlacer, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{orders: orders, logger: logger}
}

// CheckoutInput is the shipping form as submitted by the shopper.
type CheckoutInput struct {
	Shipping order.Shipping
	Note     string
}

// CheckoutResult reports a confirmed order and where to send the
// shopper next.
type CheckoutResult struct {
	Confirmation order.Confirmation
	Summary      order.Summary
	RedirectTo   string
}

// shippingFields lists the required shipping fields in form order.
// Validation reports only the first missing one.
var shippingFields = []struct {
	name  string
	label string
	value func(order.Shipping) string
}{
	{"name", "Full name", func(s order.Shipping) string { return s.Name }},
	{"email", "Email", func(s order.Shipping) string { return s.Email }},
	{"phone", "Phone number", func(s order.Shipping) string { return s.Phone }},
	{"address", "Address", func(s order.Shipping) string { return s.Address }},
	{"city", "City", func(s order.Shipping) string { return s.City }},
	{"country", "Country", func(s order.Shipping) string { return s.Country }},
	{"zip", "ZIP code", func(s order.Shipping) string { return s.Zip }},
}

// ValidateShipping checks the shipping form and returns a field scoped
// validation error for the first empty field, in form order.
func ValidateShipping(s order.Shipping) error {
	for _, f := range shippingFields {
		if strings.TrimSpace(f.value(s)) == "" {
			return apperrors.ValidationField(f.name, f.label+" is required.")
		}
	}
	return nil
}

// PlaceOrder runs the full checkout flow for one session. The sequence
// is fixed: authentication, shipping validation, cart emptiness, then
// the upstream call. An upstream credential rejection resets the
// session; any failure before confirmation leaves the cart untouched.
func (c *CheckoutService) PlaceOrder(ctx context.Context, sess *SessionStore, crt *CartStore, in CheckoutInput) (*CheckoutResult, error) {
	snapshot := sess.Session()
	if !snapshot.IsAuthenticated() {
		return nil, apperrors.Unauthenticated("Sign in to place your order.")
	}
	if err := ValidateShipping(in.Shipping); err != nil {
		return nil, err
	}

	items := crt.Items(ctx)
	if len(items) == 0 {
		return nil, apperrors.Validation("Your cart is empty.")
	}

	draft := order.Draft{
		Items:    items,
		Shipping: in.Shipping,
		Note:     strings.TrimSpace(in.Note),
		Summary:  order.Summarize(items),
	}

	conf, err := c.orders.PlaceOrder(ctx, sess.Credential(), draft)
	if err != nil {
		if errors.Is(err, ports.ErrSessionLost) {
			sess.HandleAuthFailure()
			return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "Your session has expired. Sign in again to place the order.")
		}
		if apperrors.IsValidation(err) {
			return nil, err
		}
		c.logger.ErrorContext(ctx, "order placement failed", "cart_id", crt.ID(), "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "Placing the order failed. Your cart is unchanged, please try again.")
	}

	c.logger.InfoContext(ctx, "order placed",
		"order_id", conf.OrderID,
		"user_id", snapshot.Identity.ID,
		"lines", len(items),
		"grand_total", draft.Summary.GrandTotal,
	)
	crt.Clear(ctx)

	return &CheckoutResult{
		Confirmation: conf,
		Summary:      draft.Summary,
		RedirectTo:   auth.RouteUserOrders,
	}, nil
}
