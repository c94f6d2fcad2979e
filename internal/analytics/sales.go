// internal/analytics/sales.go
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aurum-jewels/admin-console/internal/models"
)

type ProductSales struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Quantity int     `json:"qty"`
	Revenue  float64 `json:"revenue"`
}

type CategorySales struct {
	Category   string  `json:"category"`
	Quantity   int     `json:"qty"`
	Revenue    float64 `json:"revenue"`
	Percentage int64   `json:"percentage"`
}

type salesBucket struct {
	key     string
	name    string
	image   string
	qty     int
	revenue decimal.Decimal
}

// accumulator keeps buckets in first-seen order so ties sort stably.
type accumulator struct {
	index   map[string]int
	buckets []*salesBucket
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

func (a *accumulator) bucket(key string) (*salesBucket, bool) {
	if i, ok := a.index[key]; ok {
		return a.buckets[i], false
	}
	b := &salesBucket{key: key, revenue: decimal.Zero}
	a.index[key] = len(a.buckets)
	a.buckets = append(a.buckets, b)
	return b, true
}

// ComputeTopProducts groups every order item by product reference, falling
// back to the item name, and ranks by quantity sold.
func ComputeTopProducts(orders []models.Order, limit int) []ProductSales {
	limit = normalizeLimit(limit)
	acc := newAccumulator()

	for _, order := range orders {
		for _, item := range order.OrderItems {
			key := item.Product
			if key == "" {
				key = item.Name
			}
			b, created := acc.bucket(key)
			if created {
				b.name = item.Name
				b.image = item.Image
			}
			b.qty += item.Qty
			b.revenue = b.revenue.Add(lineRevenue(item))
		}
	}

	ranked := acc.buckets
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].qty > ranked[j].qty
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]ProductSales, 0, len(ranked))
	for _, b := range ranked {
		revenue, _ := b.revenue.Float64()
		result = append(result, ProductSales{
			ID:       b.key,
			Name:     b.name,
			Image:    b.image,
			Quantity: b.qty,
			Revenue:  revenue,
		})
	}
	return result
}

// ComputeTopCategories credits each order item's full quantity and revenue to
// every category of its product. Percentages are relative to the top entry.
func ComputeTopCategories(products []models.Product, orders []models.Order, limit int) []CategorySales {
	limit = normalizeLimit(limit)

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}

	acc := newAccumulator()
	for _, order := range orders {
		for _, item := range order.OrderItems {
			categories := []string{UncategorizedLabel}
			if p, ok := byID[item.Product]; ok && len(p.Category) > 0 {
				categories = p.Category
			}

			revenue := lineRevenue(item)
			for _, category := range categories {
				b, _ := acc.bucket(category)
				b.qty += item.Qty
				b.revenue = b.revenue.Add(revenue)
			}
		}
	}

	ranked := acc.buckets
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].revenue.GreaterThan(ranked[j].revenue)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	maxRevenue := decimal.NewFromInt(1)
	if len(ranked) > 0 && ranked[0].revenue.IsPositive() {
		maxRevenue = ranked[0].revenue
	}
	hundred := decimal.NewFromInt(100)

	result := make([]CategorySales, 0, len(ranked))
	for _, b := range ranked {
		revenue, _ := b.revenue.Float64()
		result = append(result, CategorySales{
			Category:   b.key,
			Quantity:   b.qty,
			Revenue:    revenue,
			Percentage: b.revenue.Mul(hundred).Div(maxRevenue).Round(0).IntPart(),
		})
	}
	return result
}
