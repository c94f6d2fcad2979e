// internal/models/product.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Product struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Image        string     `json:"image"`
	Brand        string     `json:"brand,omitempty"`
	Description  string     `json:"description,omitempty"`
	Price        float64    `json:"price"`
	Category     Categories `json:"category"`
	CountInStock int        `json:"countInStock"`
	Rating       float64    `json:"rating"`
	NumReviews   int        `json:"numReviews"`
}

// PrimaryCategory is the first category value, or "" if there is none.
func (p Product) PrimaryCategory() string {
	if len(p.Category) == 0 {
		return ""
	}
	return p.Category[0]
}

// Categories is the normalized category list of a product. The backend sends
// either a single string or a list of strings; both decode into a list.
type Categories []string

func (c *Categories) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = normalizeCategories([]string{s})
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("category list: %w", err)
		}
		*c = normalizeCategories(list)
		return nil
	default:
		return fmt.Errorf("category must be a string or a list of strings, got %s", string(data))
	}
}

// Join renders the list the way the analytics table shows it.
func (c Categories) Join() string {
	return strings.Join(c, ", ")
}

func normalizeCategories(values []string) Categories {
	out := make(Categories, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
