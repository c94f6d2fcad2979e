// internal/analytics/dashboard.go
package analytics

import (
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/snapshot"
)

// Dashboard is the full derived view for the landing page.
type Dashboard struct {
	Summary       Summary           `json:"summary"`
	TopProducts   []ProductSales    `json:"topProducts"`
	TopCategories []CategorySales   `json:"topCategories"`
	RecentOrders  []models.Order    `json:"recentOrders"`
	TopReviewed   []ReviewedProduct `json:"topReviewed"`
}

// ComputeDashboard derives every dashboard aggregate from one snapshot.
func ComputeDashboard(snap *snapshot.Snapshot, limit int) Dashboard {
	if snap == nil {
		snap = &snapshot.Snapshot{}
	}
	return Dashboard{
		Summary:       ComputeSummary(snap),
		TopProducts:   ComputeTopProducts(snap.Orders, limit),
		TopCategories: ComputeTopCategories(snap.Products, snap.Orders, limit),
		RecentOrders:  ComputeRecentOrders(snap.Orders, limit),
		TopReviewed:   ComputeTopReviewed(snap.Products, limit),
	}
}

// ProductAnalytics is the performance table with its totals.
type ProductAnalytics struct {
	Rows   []PerformanceRow  `json:"rows"`
	Totals PerformanceTotals `json:"totals"`
}

// ComputeProductAnalytics builds, filters and sorts the performance table.
// Totals always cover the unfiltered table.
func ComputeProductAnalytics(snap *snapshot.Snapshot, search, field string, order SortOrder) ProductAnalytics {
	if snap == nil {
		snap = &snapshot.Snapshot{}
	}
	if field == "" {
		field = DefaultPerformanceSort
	}
	if order != SortAsc {
		order = SortDesc
	}

	rows := ComputeProductPerformance(snap.Products, snap.Orders)
	return ProductAnalytics{
		Rows:   SortPerformance(FilterPerformance(rows, search), field, order),
		Totals: SummarizePerformance(rows),
	}
}
