package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	items := []Item{
		{ProductID: "p-1", UnitPrice: 10, Quantity: 2},
		{ProductID: "p-2", UnitPrice: 5, Quantity: 3},
	}
	assert.InDelta(t, 35.0, Total(items), 0.0001)
}

func TestTotal_Empty(t *testing.T) {
	assert.Zero(t, Total(nil))
	assert.Zero(t, Total([]Item{}))
}

func TestNormalize_CollapsesDuplicates(t *testing.T) {
	items := []Item{
		{ProductID: "p-1", Name: "First", UnitPrice: 10, Quantity: 1},
		{ProductID: "p-2", UnitPrice: 4, Quantity: 2},
		{ProductID: "p-1", Name: "Dup", UnitPrice: 10, Quantity: 3},
	}

	got := Normalize(items)

	require.Len(t, got, 2)
	assert.Equal(t, "p-1", got[0].ProductID)
	assert.Equal(t, "First", got[0].Name)
	assert.Equal(t, 4, got[0].Quantity)
	assert.Equal(t, "p-2", got[1].ProductID)
}

func TestNormalize_DropsMalformedLines(t *testing.T) {
	items := []Item{
		{ProductID: "", UnitPrice: 10, Quantity: 1},
		{ProductID: "p-1", UnitPrice: -3, Quantity: 1},
		{ProductID: "p-2", UnitPrice: 2, Quantity: 0},
		{ProductID: "p-3", UnitPrice: 2, Quantity: -5},
	}

	got := Normalize(items)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Quantity, "zero quantity clamps to one")
	assert.Equal(t, 1, got[1].Quantity, "negative quantity clamps to one")
}

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	items := []Item{{ProductID: "p-1", Name: "Mug", UnitPrice: 9.5, Quantity: 2}}
	data, err := EncodeSnapshot(items)
	require.NoError(t, err)

	got := DecodeSnapshot(data)
	assert.Equal(t, items, got)
}

func TestDecodeSnapshot_MalformedYieldsEmptyCart(t *testing.T) {
	assert.Nil(t, DecodeSnapshot(nil))
	assert.Nil(t, DecodeSnapshot([]byte("")))
	assert.Nil(t, DecodeSnapshot([]byte("{not json")))
	assert.Nil(t, DecodeSnapshot([]byte(`{"items": "wrong shape"}`)))
}

func TestEncodeSnapshot_NilEncodesAsEmptyArray(t *testing.T) {
	data, err := EncodeSnapshot(nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestNewItem(t *testing.T) {
	it := NewItem(Product{ID: "p-9", Name: "Lamp", Price: 20, Image: "lamp.png", SupplierID: "s-1"})
	assert.Equal(t, Item{ProductID: "p-9", Name: "Lamp", UnitPrice: 20, Quantity: 1, ImageRef: "lamp.png", SupplierID: "s-1"}, it)
}
