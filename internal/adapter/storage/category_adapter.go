package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

type CategoryAdapter struct {
	coll *mongo.Collection
}

func NewCategoryAdapter(db *mongo.Database) *CategoryAdapter {
	return &CategoryAdapter{coll: db.Collection(categoriesCollection)}
}

func (a *CategoryAdapter) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	result, err := a.coll.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Category{}, domain.ErrCategoryExists
		}
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)
	return category, nil
}

func (a *CategoryAdapter) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var category domain.Category
	err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (a *CategoryAdapter) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := a.coll.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return &category, nil
}

func (a *CategoryAdapter) FindAll(ctx context.Context) ([]domain.Category, error) {
	cursor, err := a.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all categories: %w", err)
	}

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (a *CategoryAdapter) Update(ctx context.Context, category domain.Category) error {
	result, err := a.coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (a *CategoryAdapter) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := a.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
