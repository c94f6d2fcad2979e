// internal/services/user_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aurum-jewels/admin-console/internal/analytics"
	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type UserService struct {
	backend             Backend
	notificationService *NotificationService
	logger              *logrus.Entry
}

// UserDetail is a customer account with its order history.
type UserDetail struct {
	User         models.User    `json:"user"`
	Orders       []models.Order `json:"orders"`
	OrderCount   int            `json:"orderCount"`
	TotalSpent   float64        `json:"totalSpent"`
	RecentOrders []models.Order `json:"recentOrders"`
}

func NewUserService(b Backend, notificationService *NotificationService, logger *logrus.Logger) *UserService {
	return &UserService{
		backend:             b,
		notificationService: notificationService,
		logger:              logger.WithField("service", "user"),
	}
}

func (s *UserService) ListUsers(ctx context.Context, session backend.Session, search string) ([]models.User, error) {
	users, err := s.backend.ListUsers(ctx, session)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return users, nil
	}
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), term) || strings.Contains(strings.ToLower(u.Email), term) {
			result = append(result, u)
		}
	}
	return result, nil
}

// GetUserDetail fetches the account and its orders in parallel.
func (s *UserService) GetUserDetail(ctx context.Context, session backend.Session, id string) (*UserDetail, error) {
	var (
		user   *models.User
		orders []models.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.backend.GetUser(gctx, session, id)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = s.backend.ListOrdersByUser(gctx, session, id)
		if err != nil {
			return fmt.Errorf("failed to load order history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	spent := decimal.Zero
	for _, o := range orders {
		if o.IsPaid {
			spent = spent.Add(decimal.NewFromFloat(o.TotalPrice))
		}
	}
	totalSpent, _ := spent.Float64()

	return &UserDetail{
		User:         *user,
		Orders:       orders,
		OrderCount:   len(orders),
		TotalSpent:   totalSpent,
		RecentOrders: analytics.ComputeRecentOrders(orders, analytics.DefaultLimit),
	}, nil
}

func (s *UserService) UpdateUser(ctx context.Context, session backend.Session, id string, req backend.UserUpdate) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	if id == session.UserID && !*req.IsAdmin {
		return nil, &backend.ValidationError{
			Message: "you cannot remove your own admin access",
			Fields:  []backend.FieldError{{Field: "isAdmin", Tag: "self", Message: "you cannot remove your own admin access"}},
		}
	}

	user, err := s.backend.UpdateUser(ctx, session, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"user_id": id, "is_admin": *req.IsAdmin, "admin_id": session.UserID}).Info("User updated")
	s.notificationService.DataChanged("user")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, session backend.Session, id string) error {
	if id == session.UserID {
		return &backend.ValidationError{Message: "you cannot delete your own account"}
	}
	if err := s.backend.DeleteUser(ctx, session, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"user_id": id, "admin_id": session.UserID}).Info("User deleted")
	s.notificationService.DataChanged("user")
	return nil
}
