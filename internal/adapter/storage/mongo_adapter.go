package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names follow the store's pluralized convention.
const (
	usersCollection      = "users"
	sellersCollection    = "sellers"
	adminsCollection     = "admins"
	ordersCollection     = "orders"
	productsCollection   = "products"
	categoriesCollection = "categories"
	cartsCollection      = "carts"
)

// MongoAdapters bundles every document-store adapter over one database
// handle so the composition root wires storage in one call.
type MongoAdapters struct {
	Users      *UserAdapter
	Sellers    *SellerAdapter
	Admins     *AdminAdapter
	Orders     *OrderAdapter
	Products   *ProductAdapter
	Categories *CategoryAdapter
	Carts      *CartAdapter
	Analytics  *AnalyticsAdapter
}

func NewMongoAdapters(db *mongo.Database) *MongoAdapters {
	return &MongoAdapters{
		Users:      NewUserAdapter(db),
		Sellers:    NewSellerAdapter(db),
		Admins:     NewAdminAdapter(db),
		Orders:     NewOrderAdapter(db),
		Products:   NewProductAdapter(db),
		Categories: NewCategoryAdapter(db),
		Carts:      NewCartAdapter(db),
		Analytics:  NewAnalyticsAdapter(db),
	}
}

// EnsureIndexes creates the unique keys signup duplicate checks rely on.
func (m *MongoAdapters) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		sellersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "licenseID", Value: 1}}, Options: unique},
		},
		adminsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "items.seller", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		cartsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// Connect dials the store and verifies the connection before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}
