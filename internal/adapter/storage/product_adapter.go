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

type ProductAdapter struct {
	coll *mongo.Collection
}

func NewProductAdapter(db *mongo.Database) *ProductAdapter {
	return &ProductAdapter{coll: db.Collection(productsCollection)}
}

func (a *ProductAdapter) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	result, err := a.coll.InsertOne(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (a *ProductAdapter) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

func (a *ProductAdapter) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := a.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (a *ProductAdapter) FindDuplicate(ctx context.Context, sellerID primitive.ObjectID, name string, categoryID primitive.ObjectID) (*domain.Product, error) {
	filter := bson.M{
		"seller":       sellerID,
		"name":         name,
		"category._id": categoryID,
	}

	var product domain.Product
	err := a.coll.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find duplicate product: %w", err)
	}
	return &product, nil
}

func (a *ProductAdapter) FindBySeller(ctx context.Context, sellerID primitive.ObjectID, active bool) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := a.coll.Find(ctx, bson.M{"seller": sellerID, "isActive": active}, opts)
	if err != nil {
		return nil, fmt.Errorf("find seller products: %w", err)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode seller products: %w", err)
	}
	return products, nil
}

func (a *ProductAdapter) FindActive(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := a.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("find active products: %w", err)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode active products: %w", err)
	}
	return products, nil
}

// Update scopes the replace to the owning seller so a foreign seller's
// write resolves as not found.
func (a *ProductAdapter) Update(ctx context.Context, product domain.Product) error {
	filter := bson.M{"_id": product.ID, "seller": product.Seller}
	result, err := a.coll.ReplaceOne(ctx, filter, product)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
