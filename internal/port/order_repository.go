package port

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

type OrderRepository interface {
	// Create persists a new order aggregate.
	Create(ctx context.Context, order domain.Order) error

	// FindBySellerItem resolves the single order matching order id, item id
	// and item seller in one filter. Any miss returns
	// domain.ErrOrderItemNotFound so callers cannot distinguish a foreign
	// seller's item from a nonexistent one.
	FindBySellerItem(ctx context.Context, orderID, itemID, sellerID primitive.ObjectID) (*domain.Order, error)

	// FindForSeller returns orders containing at least one item owned by
	// the seller, newest first. Items are NOT filtered here; the service
	// strips foreign items before anything leaves the core.
	FindForSeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Order, error)

	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]domain.Order, error)

	// Save rewrites the whole order document. The order is the addressable
	// unit of storage; items are never written independently and no
	// version check is performed (last writer wins).
	Save(ctx context.Context, order domain.Order) error
}
