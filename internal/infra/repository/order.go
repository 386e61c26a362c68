package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type OrderRepository struct {
	conn *mongodb.Connection
}

func NewOrderRepository(conn *mongodb.Connection) *OrderRepository {
	return &OrderRepository{conn: conn}
}

func (r *OrderRepository) col() *mongo.Collection {
	return r.conn.Database().Collection(ordersCollection)
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.col().InsertOne(ctx, o)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return infra.WrapRepoErr("order already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return &o, nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	var orders []*order.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, infra.WrapRepoErr("failed to decode orders", err)
	}
	return orders, nil
}
