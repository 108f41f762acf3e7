package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dertamme/milestone3/internal/cart"
)

func TestAdd(t *testing.T) {

	t.Run("Appends a fresh entry with quantity 1", func(t *testing.T) {
		items := cart.Add(nil, 5)
		assert.Equal(t, []cart.Item{{ProductID: 5, Quantity: 1}}, items)
	})

	t.Run("Increments an existing entry", func(t *testing.T) {
		items := []cart.Item{{ProductID: 5, Quantity: 2}}
		items = cart.Add(items, 5)
		assert.Equal(t, []cart.Item{{ProductID: 5, Quantity: 3}}, items)
	})

	t.Run("Leaves other entries alone", func(t *testing.T) {
		items := []cart.Item{{ProductID: 1, Quantity: 1}}
		items = cart.Add(items, 2)
		assert.Equal(t, []cart.Item{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}}, items)
	})
}

func TestRemove(t *testing.T) {

	t.Run("Drops the entry entirely", func(t *testing.T) {
		items := []cart.Item{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}}
		items = cart.Remove(items, 1)
		assert.Equal(t, []cart.Item{{ProductID: 2, Quantity: 1}}, items)
	})

	t.Run("Is a no-op for an unknown product", func(t *testing.T) {
		items := []cart.Item{{ProductID: 1, Quantity: 3}}
		items = cart.Remove(items, 99)
		assert.Equal(t, []cart.Item{{ProductID: 1, Quantity: 3}}, items)
	})

	t.Run("Is safe on an empty cart", func(t *testing.T) {
		assert.Empty(t, cart.Remove(nil, 1))
	})
}

func TestIncreaseDecrease(t *testing.T) {

	t.Run("Decrease on a quantity-1 entry removes it", func(t *testing.T) {
		items := []cart.Item{{ProductID: 7, Quantity: 1}}
		items = cart.Decrease(items, 7)
		assert.Empty(t, items)
	})

	t.Run("Increase then decrease round-trips", func(t *testing.T) {
		before := []cart.Item{{ProductID: 7, Quantity: 2}}
		items := cart.Increase([]cart.Item{{ProductID: 7, Quantity: 2}}, 7)
		items = cart.Decrease(items, 7)
		assert.Equal(t, before, items)
	})

	t.Run("Increase on a missing product is a no-op", func(t *testing.T) {
		items := cart.Increase([]cart.Item{{ProductID: 1, Quantity: 1}}, 99)
		assert.Equal(t, []cart.Item{{ProductID: 1, Quantity: 1}}, items)
	})

	t.Run("Decrease on an empty cart is safe", func(t *testing.T) {
		assert.Empty(t, cart.Decrease(nil, 1))
	})
}

func TestCount(t *testing.T) {

	t.Run("Sums quantities across entries", func(t *testing.T) {
		items := []cart.Item{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}}
		assert.Equal(t, 5, cart.Count(items))
	})

	t.Run("Returns 0 for an absent cart", func(t *testing.T) {
		assert.Equal(t, 0, cart.Count(nil))
	})
}
