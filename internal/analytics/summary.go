// internal/analytics/summary.go
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/snapshot"
)

// DefaultLimit is used by the leaderboards when no positive limit is given.
const DefaultLimit = 5

// UncategorizedLabel buckets items whose product is unknown or has no category.
const UncategorizedLabel = "Uncategorized"

type Summary struct {
	TotalSales     float64 `json:"totalSales"`
	TotalOrders    int     `json:"totalOrders"`
	TotalProducts  int     `json:"totalProducts"`
	TotalCustomers int     `json:"totalCustomers"`
}

// ComputeSummary totals paid orders only. Unpaid orders still count towards
// TotalOrders.
func ComputeSummary(snap *snapshot.Snapshot) Summary {
	if snap == nil {
		return Summary{}
	}

	sales := decimal.Zero
	for _, order := range snap.Orders {
		if order.IsPaid {
			sales = sales.Add(decimal.NewFromFloat(order.TotalPrice))
		}
	}

	customers := 0
	for _, user := range snap.Users {
		if !user.Admin() {
			customers++
		}
	}

	totalSales, _ := sales.Float64()
	return Summary{
		TotalSales:     totalSales,
		TotalOrders:    len(snap.Orders),
		TotalProducts:  len(snap.Products),
		TotalCustomers: customers,
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func lineRevenue(item models.OrderItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
}
