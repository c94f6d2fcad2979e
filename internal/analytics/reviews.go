// internal/analytics/reviews.go
package analytics

import (
	"sort"

	"github.com/aurum-jewels/admin-console/internal/models"
)

type ReviewedProduct struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"reviewCount"`
	PrimaryCategory string  `json:"primaryCategory"`
}

// ComputeTopReviewed ranks reviewed products by rating, then by review count.
func ComputeTopReviewed(products []models.Product, limit int) []ReviewedProduct {
	limit = normalizeLimit(limit)

	reviewed := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.NumReviews > 0 {
			reviewed = append(reviewed, p)
		}
	}

	sort.SliceStable(reviewed, func(i, j int) bool {
		if reviewed[i].Rating != reviewed[j].Rating {
			return reviewed[i].Rating > reviewed[j].Rating
		}
		return reviewed[i].NumReviews > reviewed[j].NumReviews
	})
	if len(reviewed) > limit {
		reviewed = reviewed[:limit]
	}

	result := make([]ReviewedProduct, 0, len(reviewed))
	for _, p := range reviewed {
		result = append(result, ReviewedProduct{
			ID:              p.ID,
			Name:            p.Name,
			Image:           p.Image,
			Rating:          p.Rating,
			ReviewCount:     p.NumReviews,
			PrimaryCategory: p.PrimaryCategory(),
		})
	}
	return result
}
