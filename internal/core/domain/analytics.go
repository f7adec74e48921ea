package domain

// Aggregation results for the admin dashboard. These are shaped by the
// store's group pipelines and carry no behavior.

type DailySales struct {
	Date        string  `bson:"_id" json:"date"`
	TotalSales  float64 `bson:"totalSales" json:"totalSales"`
	OrdersCount int     `bson:"ordersCount" json:"ordersCount"`
}

type UserStats struct {
	TotalUsers          int `bson:"totalUsers" json:"totalUsers"`
	ActiveUsers         int `bson:"activeUsers" json:"activeUsers"`
	RegisteredLastMonth int `bson:"registeredLastMonth" json:"registeredLastMonth"`
}

type ProductStats struct {
	TotalProducts  int     `bson:"totalProducts" json:"totalProducts"`
	ActiveProducts int     `bson:"activeProducts" json:"activeProducts"`
	TotalStock     int     `bson:"totalStock" json:"totalStock"`
	AveragePrice   float64 `bson:"averagePrice" json:"averagePrice"`
}

type SellerSales struct {
	SellerID          string  `bson:"_id" json:"sellerId"`
	SellerName        string  `bson:"sellerName" json:"sellerName"`
	TotalQuantitySold int     `bson:"totalQuantitySold" json:"totalQuantitySold"`
	TotalRevenue      float64 `bson:"totalRevenue" json:"totalRevenue"`
	OrderCount        int     `bson:"orderCount" json:"orderCount"`
}
