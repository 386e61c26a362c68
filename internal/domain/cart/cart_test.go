//go:build unit

package cart_test

import (
	"testing"

	"storefront/internal/domain/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsSet(t *testing.T) {
	t.Run("zero removes the entry entirely", func(t *testing.T) {
		items := cart.Items{"p1": 3}
		require.NoError(t, items.Set("p1", 0))
		_, exists := items["p1"]
		assert.False(t, exists)
	})

	t.Run("negative quantity is rejected, never stored", func(t *testing.T) {
		items := cart.Items{"p1": 3}
		err := items.Set("p1", -1)
		require.ErrorIs(t, err, cart.ErrNegativeQuantity)
		assert.Equal(t, int64(3), items["p1"])
	})

	t.Run("positive quantity is stored absolutely", func(t *testing.T) {
		items := cart.Items{"p1": 3}
		require.NoError(t, items.Set("p1", 7))
		assert.Equal(t, int64(7), items["p1"])
	})
}

func TestItemsAdd(t *testing.T) {
	t.Run("default increment path", func(t *testing.T) {
		items := cart.Items{}
		assert.Equal(t, int64(1), items.Add("p1", 1))
		assert.Equal(t, int64(2), items.Add("p1", 1))
	})

	t.Run("clamps at zero on the low end", func(t *testing.T) {
		items := cart.Items{"p1": 1}
		assert.Equal(t, int64(0), items.Add("p1", -5))
		_, exists := items["p1"]
		assert.False(t, exists)
	})
}

func TestItemsCount(t *testing.T) {
	items := cart.Items{"p1": 2, "p2": 1, "p3": 4}
	assert.Equal(t, int64(7), items.Count())
	assert.Equal(t, int64(0), cart.Items{}.Count())
}

func TestItemsNormalized(t *testing.T) {
	// Zero and negative entries can appear in documents written by older
	// tooling; loading must drop them.
	items := cart.Items{"p1": 2, "p2": 0, "p3": -1}
	got := items.Normalized()
	assert.Equal(t, cart.Items{"p1": 2}, got)
}
