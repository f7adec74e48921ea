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

type CartAdapter struct {
	coll *mongo.Collection
}

func NewCartAdapter(db *mongo.Database) *CartAdapter {
	return &CartAdapter{coll: db.Collection(cartsCollection)}
}

// FindByUser never reports a miss; a user without a stored cart gets an
// empty one.
func (a *CartAdapter) FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	var cart domain.Cart
	err := a.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.Cart{User: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

func (a *CartAdapter) Save(ctx context.Context, cart domain.Cart) error {
	filter := bson.M{"user": cart.User}
	update := bson.M{"$set": bson.M{
		"user":      cart.User,
		"items":     cart.Items,
		"updatedAt": cart.UpdatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := a.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
