package port

import (
	"context"
	"time"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

type CacheRepository interface {
	// GetActiveProducts returns the cached public listing; the bool is
	// false on a cache miss.
	GetActiveProducts(ctx context.Context) ([]domain.Product, bool, error)

	// SetActiveProducts stores the public listing with a TTL.
	SetActiveProducts(ctx context.Context, products []domain.Product, ttl time.Duration) error

	// InvalidateActiveProducts drops the cached listing after any product
	// mutation.
	InvalidateActiveProducts(ctx context.Context) error
}
