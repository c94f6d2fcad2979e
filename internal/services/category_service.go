// internal/services/category_service.go
package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/analytics"
	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type CategoryService struct {
	backend             Backend
	channel             events.Channel
	notificationService *NotificationService
	logger              *logrus.Entry
}

func NewCategoryService(b Backend, channel events.Channel, notificationService *NotificationService, logger *logrus.Logger) *CategoryService {
	return &CategoryService{
		backend:             b,
		channel:             channel,
		notificationService: notificationService,
		logger:              logger.WithField("service", "category"),
	}
}

func (s *CategoryService) ListCategories(ctx context.Context, session backend.Session, search string) ([]models.Category, error) {
	categories, err := s.backend.ListCategories(ctx, session)
	if err != nil {
		return nil, err
	}
	return analytics.FilterCategories(categories, search), nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, session backend.Session, req backend.CategoryInput) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.backend.CreateCategory(ctx, session, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"category": category.Name, "admin_id": session.UserID}).Info("Category created")
	s.notificationService.DataChanged("category")
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, session backend.Session, id string) error {
	if err := s.backend.DeleteCategory(ctx, session, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"category_id": id, "admin_id": session.UserID}).Info("Category deleted")
	s.notificationService.DataChanged("category")
	return nil
}

// WatchCategories refreshes the filtered category list on data_updated.
func (s *CategoryService) WatchCategories(ctx context.Context, session backend.Session, search string, onChange func([]models.Category)) (*refresh.Coordinator[[]models.Category], error) {
	coordinator := refresh.New[[]models.Category](s.channel, refresh.Options[[]models.Category]{
		Kinds: []events.Kind{events.DataUpdated},
		Fetch: func(ctx context.Context) ([]models.Category, error) {
			return s.ListCategories(ctx, session, search)
		},
		OnChange: onChange,
		Logger:   s.logger.WithField("view", "categories"),
	})

	if err := coordinator.Start(ctx); err != nil {
		coordinator.Close()
		return nil, err
	}
	return coordinator, nil
}
