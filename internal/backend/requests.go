// internal/backend/requests.go
package backend

import "github.com/aurum-jewels/admin-console/internal/models"

// ProductInput is the create/update body for a product.
type ProductInput struct {
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Price        float64 `json:"price" validate:"gte=0"`
	Image        string  `json:"image" validate:"omitempty,max=2048"`
	Brand        string  `json:"brand" validate:"max=100"`
	Category     string  `json:"category" validate:"required,max=100"`
	Description  string  `json:"description" validate:"max=5000"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// UserUpdate replaces the editable fields of a user. IsAdmin must be sent
// explicitly so an omitted flag never demotes anyone.
type UserUpdate struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	IsAdmin *bool  `json:"isAdmin" validate:"required"`
}

type OrderStatusUpdate struct {
	OrderStatus models.OrderStatus `json:"orderStatus" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UploadResult struct {
	URL string `json:"url"`
}
