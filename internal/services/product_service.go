// internal/services/product_service.go
package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type ProductService struct {
	backend             Backend
	notificationService *NotificationService
	logger              *logrus.Entry
}

type ProductSearchParams struct {
	utils.PaginationParams
	Category string `json:"category,omitempty"`
}

func NewProductService(b Backend, notificationService *NotificationService, logger *logrus.Logger) *ProductService {
	return &ProductService{
		backend:             b,
		notificationService: notificationService,
		logger:              logger.WithField("service", "product"),
	}
}

// ListProducts filters by name and category in memory; the backend list
// endpoint has no query support.
func (s *ProductService) ListProducts(ctx context.Context, session backend.Session, params ProductSearchParams) ([]models.Product, error) {
	products, err := s.backend.ListProducts(ctx, session)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(params.Search))
	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if params.Category != "" && !hasCategory(p, params.Category) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func hasCategory(p models.Product, category string) bool {
	for _, c := range p.Category {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func (s *ProductService) GetProduct(ctx context.Context, session backend.Session, id string) (*models.Product, error) {
	return s.backend.GetProduct(ctx, session, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, session backend.Session, req backend.ProductInput) (*models.Product, error) {
	req = normalizeProductInput(req)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	product, err := s.backend.CreateProduct(ctx, session, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"product_id": product.ID, "admin_id": session.UserID}).Info("Product created")
	s.notificationService.DataChanged("product")
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, session backend.Session, id string, req backend.ProductInput) (*models.Product, error) {
	req = normalizeProductInput(req)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	product, err := s.backend.UpdateProduct(ctx, session, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"product_id": id, "admin_id": session.UserID}).Info("Product updated")
	s.notificationService.DataChanged("product")
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, session backend.Session, id string) error {
	if err := s.backend.DeleteProduct(ctx, session, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"product_id": id, "admin_id": session.UserID}).Info("Product deleted")
	s.notificationService.DataChanged("product")
	return nil
}

func normalizeProductInput(req backend.ProductInput) backend.ProductInput {
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	req.Category = strings.TrimSpace(req.Category)
	req.Image = strings.TrimSpace(req.Image)
	return req
}
