package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/identity"
	"storefront/internal/infra"
	"storefront/internal/infra/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type ProductRepository struct {
	conn *mongodb.Connection
}

func NewProductRepository(conn *mongodb.Connection) *ProductRepository {
	return &ProductRepository{conn: conn}
}

func (r *ProductRepository) col() *mongo.Collection {
	return r.conn.Database().Collection(productsCollection)
}

// idFilter matches documents whose _id is stored either as the plain string
// or as the equivalent ObjectID; the catalog was populated through more than
// one data-entry path.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	err := r.col().FindOne(ctx, idFilter(id)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return &p, nil
}

// FindByIDs resolves a batch of identifiers in one query and returns the hits
// keyed by canonical id. Missing products are simply absent from the map;
// callers decide whether absence is an error or a placeholder.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	if len(ids) == 0 {
		return map[string]*catalog.Product{}, nil
	}

	keys := make(bson.A, 0, len(ids)*2)
	for _, id := range ids {
		keys = append(keys, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			keys = append(keys, oid)
		}
	}

	cursor, err := r.col().Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find products", err)
	}
	var products []catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, infra.WrapRepoErr("failed to decode products", err)
	}

	out := make(map[string]*catalog.Product, len(products))
	for i := range products {
		out[products[i].ID.ID()] = &products[i]
	}
	return out, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	var products []*catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, infra.WrapRepoErr("failed to decode products", err)
	}
	return products, nil
}

// ListByCategory filters in process using canonical reference equality. The
// category field is polymorphic on disk, so no single Mongo filter matches
// every stored shape without silently dropping valid products.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]*catalog.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	want := identity.Literal(categoryID)
	matched := make([]*catalog.Product, 0, len(all))
	for _, p := range all {
		if identity.Equal(p.Category, want) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
