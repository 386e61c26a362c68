// Package catalog holds the read-side product and category models. Both are
// created by seller/admin tooling outside this core and are never mutated
// here.
package catalog

import (
	"time"

	"storefront/internal/domain/identity"
)

// Product as stored in the products collection. Prices are integer minor
// units of a currency this layer does not interpret. Category is polymorphic
// on the wire (string, wrapped _id, or $oid) and decodes through identity.Ref.
type Product struct {
	ID          identity.Ref `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description" json:"description"`
	Price       int64        `bson:"price" json:"price"`
	OfferPrice  *int64       `bson:"offerPrice,omitempty" json:"offerPrice,omitempty"`
	Images      []string     `bson:"image" json:"image"`
	Category    identity.Ref `bson:"category" json:"category"`
	CreatedAt   time.Time    `bson:"date" json:"date"`
}

// EffectivePrice is the price charged at checkout: the discounted price when
// one is set, the list price otherwise.
func (p *Product) EffectivePrice() int64 {
	if p.OfferPrice != nil && *p.OfferPrice > 0 && *p.OfferPrice <= p.Price {
		return *p.OfferPrice
	}
	return p.Price
}

// InCategory matches the product's polymorphic category reference against a
// category identifier using canonical equality.
func (p *Product) InCategory(categoryID string) bool {
	return identity.Equal(p.Category, identity.Literal(categoryID))
}
