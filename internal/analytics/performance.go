// internal/analytics/performance.go
package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aurum-jewels/admin-console/internal/models"
)

type PerformanceRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"numReviews"`
	Quantity   int     `json:"qty"`
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders"`
}

type PerformanceTotals struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalQtySold      int     `json:"totalQtySold"`
	ProductsWithSales int     `json:"productsWithSales"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultPerformanceSort is the table's initial ordering.
const DefaultPerformanceSort = "qty"

// ComputeProductPerformance yields one row per known product, in snapshot
// order. Order items are matched by exact product reference only; items for
// unknown products are dropped.
func ComputeProductPerformance(products []models.Product, orders []models.Order) []PerformanceRow {
	index := make(map[string]int, len(products))
	rows := make([]PerformanceRow, 0, len(products))
	revenue := make([]decimal.Decimal, 0, len(products))

	for _, p := range products {
		if _, ok := index[p.ID]; ok {
			continue
		}
		index[p.ID] = len(rows)
		rows = append(rows, PerformanceRow{
			ID:         p.ID,
			Name:       p.Name,
			Image:      p.Image,
			Category:   p.Category.Join(),
			Price:      p.Price,
			Stock:      p.CountInStock,
			Rating:     p.Rating,
			NumReviews: p.NumReviews,
		})
		revenue = append(revenue, decimal.Zero)
	}

	for _, order := range orders {
		for _, item := range order.OrderItems {
			i, ok := index[item.Product]
			if !ok {
				continue
			}
			rows[i].Quantity += item.Qty
			rows[i].Orders++
			revenue[i] = revenue[i].Add(lineRevenue(item))
		}
	}

	for i := range rows {
		rows[i].Revenue, _ = revenue[i].Float64()
	}
	return rows
}

// SummarizePerformance totals the table.
func SummarizePerformance(rows []PerformanceRow) PerformanceTotals {
	total := decimal.Zero
	var totals PerformanceTotals
	for _, r := range rows {
		total = total.Add(decimal.NewFromFloat(r.Revenue))
		totals.TotalQtySold += r.Quantity
		if r.Quantity > 0 {
			totals.ProductsWithSales++
		}
	}
	totals.TotalRevenue, _ = total.Float64()
	return totals
}

// FilterPerformance keeps rows whose name contains term, ignoring case.
func FilterPerformance(rows []PerformanceRow, term string) []PerformanceRow {
	term = strings.ToLower(term)

	result := make([]PerformanceRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), term) {
			result = append(result, r)
		}
	}
	return result
}

type fieldValue struct {
	text    string
	number  float64
	numeric bool
}

var performanceFields = map[string]func(PerformanceRow) fieldValue{
	"id":         func(r PerformanceRow) fieldValue { return fieldValue{text: r.ID} },
	"name":       func(r PerformanceRow) fieldValue { return fieldValue{text: r.Name} },
	"category":   func(r PerformanceRow) fieldValue { return fieldValue{text: r.Category} },
	"price":      func(r PerformanceRow) fieldValue { return fieldValue{number: r.Price, numeric: true} },
	"stock":      func(r PerformanceRow) fieldValue { return fieldValue{number: float64(r.Stock), numeric: true} },
	"rating":     func(r PerformanceRow) fieldValue { return fieldValue{number: r.Rating, numeric: true} },
	"numReviews": func(r PerformanceRow) fieldValue { return fieldValue{number: float64(r.NumReviews), numeric: true} },
	"qty":        func(r PerformanceRow) fieldValue { return fieldValue{number: float64(r.Quantity), numeric: true} },
	"revenue":    func(r PerformanceRow) fieldValue { return fieldValue{number: r.Revenue, numeric: true} },
	"orders":     func(r PerformanceRow) fieldValue { return fieldValue{number: float64(r.Orders), numeric: true} },
}

// IsPerformanceField reports whether rows can be sorted by field.
func IsPerformanceField(field string) bool {
	_, ok := performanceFields[field]
	return ok
}

// SortPerformance returns a stably sorted copy. Strings are collated, numbers
// are compared by the sign of their difference. Unknown fields keep the input
// order.
func SortPerformance(rows []PerformanceRow, field string, order SortOrder) []PerformanceRow {
	sorted := make([]PerformanceRow, len(rows))
	copy(sorted, rows)

	get, ok := performanceFields[field]
	if !ok {
		return sorted
	}

	collator := collate.New(language.English)
	compare := func(a, b fieldValue) int {
		if a.numeric {
			switch d := a.number - b.number; {
			case d < 0:
				return -1
			case d > 0:
				return 1
			}
			return 0
		}
		return collator.CompareString(a.text, b.text)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		c := compare(get(sorted[i]), get(sorted[j]))
		if order == SortAsc {
			return c < 0
		}
		return c > 0
	})
	return sorted
}
