package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

// AnalyticsService is a thin front over the store's aggregation
// pipelines; it only adds logging.
type AnalyticsService struct {
	analytics port.AnalyticsRepository
	orders    port.OrderRepository
	log       *logrus.Entry
}

func NewAnalyticsService(analytics port.AnalyticsRepository, orders port.OrderRepository, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		orders:    orders,
		log:       logger.WithField("component", "analytics_service"),
	}
}

func (s *AnalyticsService) SalesByDay(ctx context.Context) ([]domain.DailySales, error) {
	sales, err := s.analytics.SalesByDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	s.log.WithField("days", len(sales)).Info("fetched sales data")
	return sales, nil
}

func (s *AnalyticsService) UserStats(ctx context.Context) (domain.UserStats, error) {
	stats, err := s.analytics.UserStats(ctx)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}

func (s *AnalyticsService) ProductStats(ctx context.Context) (domain.ProductStats, error) {
	stats, err := s.analytics.ProductStats(ctx)
	if err != nil {
		return domain.ProductStats{}, fmt.Errorf("product stats: %w", err)
	}
	return stats, nil
}

func (s *AnalyticsService) SellerSales(ctx context.Context) ([]domain.SellerSales, error) {
	stats, err := s.analytics.SellerSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("seller sales: %w", err)
	}
	return stats, nil
}

// AllOrders backs the admin order export.
func (s *AnalyticsService) AllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all orders: %w", err)
	}
	return orders, nil
}
