// internal/services/backend.go
package services

import (
	"context"
	"io"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/snapshot"
)

// Backend is the store REST surface the services proxy to. *backend.Client
// implements it.
type Backend interface {
	snapshot.Source

	GetProduct(ctx context.Context, s backend.Session, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, s backend.Session, in backend.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, s backend.Session, id string, in backend.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, s backend.Session, id string) error

	ListCategories(ctx context.Context, s backend.Session) ([]models.Category, error)
	CreateCategory(ctx context.Context, s backend.Session, in backend.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, s backend.Session, id string) error

	GetOrder(ctx context.Context, s backend.Session, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, s backend.Session, id string, status models.OrderStatus) (*models.Order, error)

	GetUser(ctx context.Context, s backend.Session, id string) (*models.User, error)
	UpdateUser(ctx context.Context, s backend.Session, id string, in backend.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, s backend.Session, id string) error

	Login(ctx context.Context, in backend.LoginInput) (*models.LoginResult, error)
	UploadImage(ctx context.Context, s backend.Session, filename, contentType string, file io.Reader) (string, error)
}

var _ Backend = (*backend.Client)(nil)
