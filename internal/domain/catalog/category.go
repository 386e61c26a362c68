package catalog

import "storefront/internal/domain/identity"

// Category documents are created and edited by external admin tooling; the
// core consumes them read-only through the category cache. IDs decode through
// identity.Ref because older documents carry ObjectID primary keys while
// newer ones carry plain strings.
type Category struct {
	ID       identity.Ref `bson:"_id" json:"id"`
	Name     string       `bson:"name" json:"name"`
	IsActive bool         `bson:"isActive" json:"isActive"`
}
