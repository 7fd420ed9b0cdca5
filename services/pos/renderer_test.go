package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/salesbackend/services/pos/cart"
)

var (
	cokeItem  = cart.LineItem{ID: "7", Name: "Coke", UnitPrice: decimal.RequireFromString("1.5"), AvailableStock: 3, Quantity: 1}
	waterItem = cart.LineItem{ID: "8", Name: "Water", UnitPrice: decimal.RequireFromString("0.90"), AvailableStock: 10, Quantity: 4}
)

func TestRenderer(t *testing.T) {

	t.Run("Rows follow cart order", func(t *testing.T) {
		sut := newRenderer()

		sut.ItemsChanged([]cart.LineItem{cokeItem, waterItem})

		assert.Equal(t, []Row{
			{Index: 0, Name: "Coke", UnitPrice: "1.50", Quantity: 1, Min: 1, Max: 3},
			{Index: 1, Name: "Water", UnitPrice: "0.90", Quantity: 4, Min: 1, Max: 10},
		}, sut.Rows())
	})

	t.Run("Rebuild drops stale rows", func(t *testing.T) {
		sut := newRenderer()
		sut.ItemsChanged([]cart.LineItem{cokeItem, waterItem})

		sut.ItemsChanged([]cart.LineItem{waterItem})

		assert.Equal(t, []Row{
			{Index: 0, Name: "Water", UnitPrice: "0.90", Quantity: 4, Min: 1, Max: 10},
		}, sut.Rows())
	})

	t.Run("Quantity written into input", func(t *testing.T) {
		sut := newRenderer()
		sut.ItemsChanged([]cart.LineItem{cokeItem, waterItem})

		sut.QuantityChanged(1, 7)
		sut.QuantityChanged(5, 7)

		assert.Equal(t, 7, sut.Rows()[1].Quantity)
		assert.Equal(t, 1, sut.Rows()[0].Quantity)
	})

	t.Run("Selection cleared", func(t *testing.T) {
		sut := newRenderer()
		sut.Select("7")
		assert.Equal(t, "7", sut.Selection())

		sut.SelectionCleared()

		assert.Equal(t, "", sut.Selection())
	})

	t.Run("Html", func(t *testing.T) {
		sut := newRenderer()
		sut.ItemsChanged([]cart.LineItem{cokeItem, waterItem})

		html, err := sut.HTML()

		assert.NoError(t, err)
		got := string(html)
		assert.Contains(t, got, `<div>Coke - <strong>$1.50</strong></div>`)
		assert.Contains(t, got, `name="cantidad[1]" min="1" max="10" value="4"`)
		assert.Contains(t, got, `data-index="1"`)
		assert.Contains(t, got, `name="remove" value="1"`)
	})

	t.Run("Html escapes names", func(t *testing.T) {
		sut := newRenderer()
		sut.ItemsChanged([]cart.LineItem{{ID: "9", Name: "<b>Chips</b>", UnitPrice: decimal.NewFromInt(2), AvailableStock: 1, Quantity: 1}})

		html, err := sut.HTML()

		assert.NoError(t, err)
		assert.Contains(t, string(html), "&lt;b&gt;Chips&lt;/b&gt;")
	})

	t.Run("Rendering is idempotent", func(t *testing.T) {
		sut := newRenderer()
		sut.ItemsChanged([]cart.LineItem{cokeItem, waterItem})
		first, err := sut.HTML()
		assert.NoError(t, err)
		firstRows := sut.Rows()

		sut.ItemsChanged([]cart.LineItem{cokeItem, waterItem})
		second, err := sut.HTML()
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstRows, sut.Rows())
	})

	t.Run("Empty cart", func(t *testing.T) {
		sut := newRenderer()
		sut.ItemsChanged([]cart.LineItem{})

		html, err := sut.HTML()

		assert.NoError(t, err)
		assert.Contains(t, string(html), "No products added yet.")
		assert.Empty(t, sut.Rows())
	})
}
