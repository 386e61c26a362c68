package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/catalog"
	"storefront/internal/infra"
	"storefront/internal/infra/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoriesCollection = "categories"

type CategoryRepository struct {
	conn *mongodb.Connection
}

func NewCategoryRepository(conn *mongodb.Connection) *CategoryRepository {
	return &CategoryRepository{conn: conn}
}

func (r *CategoryRepository) col() *mongo.Collection {
	return r.conn.Database().Collection(categoriesCollection)
}

// ListActive returns active categories sorted by name; this is the single
// query the category cache refreshes from.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]*catalog.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col().Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active categories", err)
	}
	var categories []*catalog.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, infra.WrapRepoErr("failed to decode categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	err := r.col().FindOne(ctx, idFilter(id)).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, infra.WrapRepoErr("category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find category", err)
	}
	return &c, nil
}
