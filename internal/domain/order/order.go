package order

import (
	"time"
)

const (
	StatusPlaced = "placed"

	// PaymentTypeCOD is the only payment type recorded today; orders are
	// cash-on-delivery intents, not captured payments.
	PaymentTypeCOD = "COD"

	// TaxRatePercent is applied to the order subtotal and floored to the
	// currency's smallest unit.
	TaxRatePercent = 2
)

// LineItem pairs a product reference with the requested quantity and the
// pricing captured when the order was assembled. Unresolved lines kept the
// raw identifier of a product that could not be found, deliberately unpriced
// so a zero never leaks into the total as if it were real.
type LineItem struct {
	ProductID  string `bson:"product" json:"productId"`
	Quantity   int64  `bson:"quantity" json:"quantity"`
	UnitPrice  int64  `bson:"unitPrice" json:"unitPrice"`
	LineTotal  int64  `bson:"lineTotal" json:"lineTotal"`
	Unresolved bool   `bson:"unresolved,omitempty" json:"unresolved,omitempty"`
}

type Order struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"userId" json:"userId"`
	Items       []LineItem `bson:"items" json:"items"`
	AddressID   string     `bson:"address" json:"addressId"`
	Amount      int64      `bson:"amount" json:"amount"`
	Status      string     `bson:"status" json:"status"`
	PaymentType string     `bson:"paymentType" json:"paymentType"`
	CreatedAt   time.Time  `bson:"date" json:"date"`
}

// Subtotal sums the priced line totals. Unresolved lines contribute nothing;
// their discrepancy is visible to order-review tooling instead of being
// silently defaulted.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, li := range items {
		if !li.Unresolved {
			sum += li.LineTotal
		}
	}
	return sum
}

// Tax returns the fixed-rate tax on a subtotal, floored by integer division.
func Tax(subtotal int64) int64 {
	return subtotal * TaxRatePercent / 100
}

// Total is the deterministic order amount: subtotal plus floored tax.
func Total(items []LineItem) int64 {
	sub := Subtotal(items)
	return sub + Tax(sub)
}
