package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/cart"
	"storefront/internal/infra"
	"storefront/internal/infra/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// CartRepository works on the sparse cartItems map embedded in user
// documents. Writes touch a single map key with $set/$unset, so concurrent
// updates to different products never clobber each other; same-key races are
// last-write-wins by design.
type CartRepository struct {
	conn *mongodb.Connection
}

func NewCartRepository(conn *mongodb.Connection) *CartRepository {
	return &CartRepository{conn: conn}
}

func (r *CartRepository) col() *mongo.Collection {
	return r.conn.Database().Collection(usersCollection)
}

func (r *CartRepository) Get(ctx context.Context, userID string) (cart.Items, error) {
	var doc struct {
		CartItems cart.Items `bson:"cartItems"`
	}
	err := r.col().FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No user document yet means an empty cart, not an error.
			return cart.Items{}, nil
		}
		return nil, infra.WrapRepoErr("failed to load cart", err)
	}
	if doc.CartItems == nil {
		return cart.Items{}, nil
	}
	return doc.CartItems.Normalized(), nil
}

func (r *CartRepository) SetItem(ctx context.Context, userID, productID string, quantity int64) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cartItems." + productID: quantity}},
		opts,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to set cart item", err)
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$unset": bson.M{"cartItems." + productID: ""}},
	)
	if err != nil {
		return infra.WrapRepoErr("failed to remove cart item", err)
	}
	return nil
}

// Clear empties the user's cart. Called by the checkout route after order
// creation succeeds; deliberately a separate write from order persistence.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cartItems": bson.M{}}},
	)
	if err != nil {
		return infra.WrapRepoErr("failed to clear cart", err)
	}
	return nil
}

// RemoveProductFromAllCarts strips the product key from every user's cart in
// one bulk update and reports how many documents changed. Invoked when a
// product is deleted from the catalog.
func (r *CartRepository) RemoveProductFromAllCarts(ctx context.Context, productID string) (int64, error) {
	res, err := r.col().UpdateMany(ctx,
		bson.M{"cartItems." + productID: bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{"cartItems." + productID: ""}},
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge product from carts", err)
	}
	return res.ModifiedCount, nil
}
