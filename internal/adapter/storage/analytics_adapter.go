package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

// AnalyticsAdapter runs the dashboard aggregations directly against the
// store. Results decode straight into the domain report types.
type AnalyticsAdapter struct {
	db *mongo.Database
}

func NewAnalyticsAdapter(db *mongo.Database) *AnalyticsAdapter {
	return &AnalyticsAdapter{db: db}
}

func (a *AnalyticsAdapter) SalesByDay(ctx context.Context) ([]domain.DailySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"totalSales":  bson.M{"$sum": "$totalAmount"},
			"ordersCount": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := a.db.Collection(ordersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sales: %w", err)
	}

	var sales []domain.DailySales
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode daily sales: %w", err)
	}
	return sales, nil
}

func (a *AnalyticsAdapter) UserStats(ctx context.Context) (domain.UserStats, error) {
	monthAgo := time.Now().AddDate(0, -1, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalUsers": bson.M{"$sum": 1},
			"activeUsers": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$isActive", 1, 0},
			}},
			"registeredLastMonth": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gte": bson.A{"$createdAt", monthAgo}}, 1, 0},
			}},
		}}},
	}

	cursor, err := a.db.Collection(usersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("aggregate user stats: %w", err)
	}

	var results []domain.UserStats
	if err := cursor.All(ctx, &results); err != nil {
		return domain.UserStats{}, fmt.Errorf("decode user stats: %w", err)
	}
	if len(results) == 0 {
		return domain.UserStats{}, nil
	}
	return results[0], nil
}

func (a *AnalyticsAdapter) ProductStats(ctx context.Context) (domain.ProductStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalProducts": bson.M{"$sum": 1},
			"activeProducts": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$isActive", 1, 0},
			}},
			"totalStock":   bson.M{"$sum": "$stock"},
			"averagePrice": bson.M{"$avg": "$price"},
		}}},
	}

	cursor, err := a.db.Collection(productsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return domain.ProductStats{}, fmt.Errorf("aggregate product stats: %w", err)
	}

	var results []domain.ProductStats
	if err := cursor.All(ctx, &results); err != nil {
		return domain.ProductStats{}, fmt.Errorf("decode product stats: %w", err)
	}
	if len(results) == 0 {
		return domain.ProductStats{}, nil
	}
	return results[0], nil
}

func (a *AnalyticsAdapter) SellerSales(ctx context.Context) ([]domain.SellerSales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":               "$items.seller",
			"totalQuantitySold": bson.M{"$sum": "$items.quantity"},
			"totalRevenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.price", "$items.quantity"},
			}},
			"orders": bson.M{"$addToSet": "$_id"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         sellersCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "seller",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":               bson.M{"$toString": "$_id"},
			"totalQuantitySold": 1,
			"totalRevenue":      1,
			"orderCount":        bson.M{"$size": "$orders"},
			"sellerName": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$seller.name", 0}},
				"unknown",
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"totalRevenue": -1}}},
	}

	cursor, err := a.db.Collection(ordersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate seller sales: %w", err)
	}

	var sales []domain.SellerSales
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode seller sales: %w", err)
	}
	return sales, nil
}
