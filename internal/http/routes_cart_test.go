package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/domain/order"
)

type cartBody struct {
	Items   []cart.Item   `json:"items"`
	Count   int           `json:"count"`
	Summary order.Summary `json:"summary"`
}

func addMug(t *testing.T, env *testEnv) *http.Response {
	t.Helper()
	return env.postJSON(t, "/cart/items", map[string]any{
		"id": "p-mug", "name": "Mug", "price": 10.0,
	})
}

func TestCartStartsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/cart/items")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body cartBody
	decodeBody(t, resp, &body)
	assert.Empty(t, body.Items)
	assert.Zero(t, body.Count)
	assert.Zero(t, body.Summary.GrandTotal)
}

func TestCartAddAccumulatesAcrossRequests(t *testing.T) {
	env := newTestEnv(t)

	addMug(t, env)
	resp := addMug(t, env)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body cartBody
	decodeBody(t, resp, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.InDelta(t, 20, body.Summary.Subtotal, 1e-9)
	assert.InDelta(t, order.ShippingFee, body.Summary.Shipping, 1e-9)
}

func TestCartAddValidatesProduct(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postJSON(t, "/cart/items", map[string]any{"name": "No ID", "price": 5.0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.postJSON(t, "/cart/items", map[string]any{"id": "p-x", "price": -1.0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCartQuantityUpdateAndClamp(t *testing.T) {
	env := newTestEnv(t)
	addMug(t, env)

	resp := env.do(t, http.MethodPut, "/cart/items/p-mug", map[string]int{"qty": 4})
	var body cartBody
	decodeBody(t, resp, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 4, body.Items[0].Quantity)

	// Below one clamps, the line stays.
	resp = env.do(t, http.MethodPut, "/cart/items/p-mug", map[string]int{"qty": 0})
	body = cartBody{}
	decodeBody(t, resp, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.Items[0].Quantity)
}

func TestCartRemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	addMug(t, env)
	env.postJSON(t, "/cart/items", map[string]any{"id": "p-tea", "name": "Tea", "price": 5.0})

	resp := env.do(t, http.MethodDelete, "/cart/items/p-mug", nil)
	var body cartBody
	decodeBody(t, resp, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "p-tea", body.Items[0].ProductID)

	resp = env.do(t, http.MethodDelete, "/cart/items", nil)
	body = cartBody{}
	decodeBody(t, resp, &body)
	assert.Empty(t, body.Items)
}

func TestCartSurvivesLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	addMug(t, env)

	env.postJSON(t, "/auth/logout", nil)

	resp := env.get(t, "/cart/items")
	var body cartBody
	decodeBody(t, resp, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "p-mug", body.Items[0].ProductID)
}
