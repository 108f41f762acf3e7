package cart

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
)

const sessionKey = "cart"

// Item is a session-held (product, quantity) pair. It never touches the
// database; inventory is only consulted at checkout.
type Item struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func init() {
	// Cookie sessions gob-encode their values.
	gob.Register([]Item{})
}

// Get reads the cart from the session, returning an empty cart when the
// session holds none.
func Get(sess sessions.Session) []Item {
	items, ok := sess.Get(sessionKey).([]Item)
	if !ok {
		return nil
	}
	return items
}

// Save writes the cart back to the session.
func Save(sess sessions.Session, items []Item) error {
	sess.Set(sessionKey, items)
	return sess.Save()
}

// Clear drops the cart from the session entirely.
func Clear(sess sessions.Session) error {
	sess.Delete(sessionKey)
	return sess.Save()
}

// Add increments the quantity for productID, appending a fresh entry with
// quantity 1 when none exists.
func Add(items []Item, productID uint) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			return items
		}
	}
	return append(items, Item{ProductID: productID, Quantity: 1})
}

// Remove drops the entry for productID.
func Remove(items []Item, productID uint) []Item {
	result := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			result = append(result, item)
		}
	}
	return result
}

// Increase increments the quantity for productID if present.
func Increase(items []Item, productID uint) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			break
		}
	}
	return items
}

// Decrease decrements the quantity for productID, removing the entry when it
// would reach zero.
func Decrease(items []Item, productID uint) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			if items[i].Quantity > 1 {
				items[i].Quantity--
				return items
			}
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// Count sums the quantities across all entries, for the cart badge.
func Count(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
