package port

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

// Account repositories return domain.ErrAccountNotFound for missing ids
// or emails and domain.ErrAccountExists on unique-key collisions.

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	// Update rewrites the whole user document.
	Update(ctx context.Context, user domain.User) error
}

type SellerRepository interface {
	Create(ctx context.Context, seller domain.Seller) (domain.Seller, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Seller, error)
	FindByEmail(ctx context.Context, email string) (*domain.Seller, error)
	// FindByNameOrEmail backs the duplicate check at signup, where either
	// the business name or the email colliding is a conflict.
	FindByNameOrEmail(ctx context.Context, name, email string) (*domain.Seller, error)
	FindAll(ctx context.Context) ([]domain.Seller, error)
	Update(ctx context.Context, seller domain.Seller) error
	LicenseIDExists(ctx context.Context, licenseID string) (bool, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Update(ctx context.Context, admin domain.Admin) error
}
