// internal/analytics/orders.go
package analytics

import (
	"sort"
	"strings"

	"github.com/aurum-jewels/admin-console/internal/models"
)

// ComputeRecentOrders returns the newest orders first. The input is not modified.
func ComputeRecentOrders(orders []models.Order, limit int) []models.Order {
	limit = normalizeLimit(limit)

	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// OrderFilter narrows the order list. Zero values match everything.
type OrderFilter struct {
	Search    string
	Status    models.OrderStatus
	Paid      *bool
	Delivered *bool
}

func (f OrderFilter) Active() bool {
	return f.Search != "" || f.Status != "" || f.Paid != nil || f.Delivered != nil
}

// FilterOrders applies every criterion at once. Search matches the display
// order number, the id or the customer name, case-insensitively.
func FilterOrders(orders []models.Order, filter OrderFilter) []models.Order {
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if term != "" && !orderMatches(order, term) {
			continue
		}
		if filter.Status != "" && order.OrderStatus != filter.Status {
			continue
		}
		if filter.Paid != nil && order.IsPaid != *filter.Paid {
			continue
		}
		if filter.Delivered != nil && order.IsDelivered != *filter.Delivered {
			continue
		}
		result = append(result, order)
	}
	return result
}

func orderMatches(order models.Order, term string) bool {
	if strings.Contains(strings.ToLower(order.OrderID), term) {
		return true
	}
	if strings.Contains(strings.ToLower(order.ID), term) {
		return true
	}
	return order.User != nil && order.User.Name != "" &&
		strings.Contains(strings.ToLower(order.User.Name), term)
}

// FilterCategories keeps categories whose name contains term.
func FilterCategories(categories []models.Category, term string) []models.Category {
	term = strings.ToLower(strings.TrimSpace(term))

	result := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) {
			result = append(result, c)
		}
	}
	return result
}
