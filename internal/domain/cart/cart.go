// Package cart models a user's cart as a sparse quantity map: absent keys
// mean zero, zero-valued entries are never stored.
package cart

import "errors"

var ErrNegativeQuantity = errors.New("quantity must be a non-negative integer")

// Items maps product identifier to a positive quantity.
type Items map[string]int64

// Normalized returns a copy with all non-positive entries dropped, enforcing
// the sparse-map invariant on data loaded from storage.
func (m Items) Normalized() Items {
	out := make(Items, len(m))
	for id, qty := range m {
		if qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// Set applies an absolute quantity. Zero removes the entry; negatives are
// rejected before any write happens.
func (m Items) Set(productID string, quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if quantity == 0 {
		delete(m, productID)
		return nil
	}
	m[productID] = quantity
	return nil
}

// Add increments by delta, clamping the result at zero.
func (m Items) Add(productID string, delta int64) int64 {
	next := m[productID] + delta
	if next < 0 {
		next = 0
	}
	// Set only fails on negative input, which the clamp rules out.
	_ = m.Set(productID, next)
	return next
}

// Count is the total item count across all entries, derived on demand for UI
// badges. There is no stored counter to keep in sync.
func (m Items) Count() int64 {
	var total int64
	for _, qty := range m {
		total += qty
	}
	return total
}
