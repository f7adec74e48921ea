package port

import (
	"context"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

// AnalyticsRepository is a direct passthrough to the document store's
// aggregation facility; no business logic lives behind it.
type AnalyticsRepository interface {
	SalesByDay(ctx context.Context) ([]domain.DailySales, error)
	UserStats(ctx context.Context) (domain.UserStats, error)
	ProductStats(ctx context.Context) (domain.ProductStats, error)
	SellerSales(ctx context.Context) ([]domain.SellerSales, error)
}
