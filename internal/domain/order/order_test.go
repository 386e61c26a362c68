//go:build unit

package order_test

import (
	"testing"

	"storefront/internal/domain/order"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	t.Run("two lines at 1000x2 and 500x1 total 2550", func(t *testing.T) {
		items := []order.LineItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
			{ProductID: "p2", Quantity: 1, UnitPrice: 500, LineTotal: 500},
		}
		assert.Equal(t, int64(2500), order.Subtotal(items))
		assert.Equal(t, int64(50), order.Tax(2500))
		assert.Equal(t, int64(2550), order.Total(items))
	})

	t.Run("tax is floored to the smallest unit", func(t *testing.T) {
		// 2% of 149 is 2.98; the stored tax must be 2, never rounded up.
		assert.Equal(t, int64(2), order.Tax(149))
		assert.Equal(t, int64(0), order.Tax(49))
	})

	t.Run("unresolved lines contribute nothing to the total", func(t *testing.T) {
		items := []order.LineItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
			{ProductID: "gone", Quantity: 3, Unresolved: true},
		}
		assert.Equal(t, int64(2040), order.Total(items))
	})

	t.Run("empty items total zero", func(t *testing.T) {
		assert.Equal(t, int64(0), order.Total(nil))
	})
}
