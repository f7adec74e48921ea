package port

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error)
	// FindDuplicate checks whether a seller already lists a product with
	// the same name in the same category.
	FindDuplicate(ctx context.Context, sellerID primitive.ObjectID, name string, categoryID primitive.ObjectID) (*domain.Product, error)
	FindBySeller(ctx context.Context, sellerID primitive.ObjectID, active bool) ([]domain.Product, error)
	FindActive(ctx context.Context) ([]domain.Product, error)
	// Update rewrites the whole product document, scoped to the owning
	// seller; a foreign seller's update resolves to ErrProductNotFound.
	Update(ctx context.Context, product domain.Product) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartRepository interface {
	// FindByUser returns the user's cart, or an empty cart when none has
	// been written yet.
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	// Save upserts the whole cart document keyed by user.
	Save(ctx context.Context, cart domain.Cart) error
}
