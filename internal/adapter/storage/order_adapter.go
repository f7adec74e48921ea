package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

type OrderAdapter struct {
	coll *mongo.Collection
}

func NewOrderAdapter(db *mongo.Database) *OrderAdapter {
	return &OrderAdapter{coll: db.Collection(ordersCollection)}
}

func (a *OrderAdapter) Create(ctx context.Context, order domain.Order) error {
	if _, err := a.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// FindBySellerItem matches order id, item id and item seller in a single
// filter. A nonexistent order, a nonexistent item and a foreign seller's
// item all fail the same way. The id and seller conditions must hold on
// the SAME array element; top-level dotted conditions would let one item
// satisfy the id and a different item satisfy the seller.
func (a *OrderAdapter) FindBySellerItem(ctx context.Context, orderID, itemID, sellerID primitive.ObjectID) (*domain.Order, error) {
	filter := bson.M{
		"_id": orderID,
		"items": bson.M{"$elemMatch": bson.M{
			"_id":    itemID,
			"seller": sellerID,
		}},
	}

	var order domain.Order
	err := a.coll.FindOne(ctx, filter).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrOrderItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order by seller item: %w", err)
	}
	return &order, nil
}

func (a *OrderAdapter) FindForSeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := a.coll.Find(ctx, bson.M{"items.seller": sellerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders for seller: %w", err)
	}

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode seller orders: %w", err)
	}
	return orders, nil
}

func (a *OrderAdapter) FindAll(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := a.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all orders: %w", err)
	}

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// Save replaces the whole document. There is no version predicate in the
// filter, so concurrent writers overwrite each other silently.
func (a *OrderAdapter) Save(ctx context.Context, order domain.Order) error {
	result, err := a.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
