// internal/services/order_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/analytics"
	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type OrderService struct {
	backend             Backend
	channel             events.Channel
	notificationService *NotificationService
	logger              *logrus.Entry
}

type UpdateOrderStatusRequest struct {
	OrderStatus models.OrderStatus `json:"orderStatus" validate:"required,order_status"`
}

func NewOrderService(b Backend, channel events.Channel, notificationService *NotificationService, logger *logrus.Logger) *OrderService {
	return &OrderService{
		backend:             b,
		channel:             channel,
		notificationService: notificationService,
		logger:              logger.WithField("service", "order"),
	}
}

func (s *OrderService) ListOrders(ctx context.Context, session backend.Session, filter analytics.OrderFilter) ([]models.Order, error) {
	orders, err := s.backend.ListOrders(ctx, session)
	if err != nil {
		return nil, err
	}
	return analytics.FilterOrders(orders, filter), nil
}

func (s *OrderService) GetOrder(ctx context.Context, session backend.Session, id string) (*models.Order, error) {
	return s.backend.GetOrder(ctx, session, id)
}

// UpdateStatus moves an order along the fulfilment flow. Transitions the
// flow does not allow are rejected before reaching the backend.
func (s *OrderService) UpdateStatus(ctx context.Context, session backend.Session, id string, req UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	current, err := s.backend.GetOrder(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if !current.OrderStatus.CanTransitionTo(req.OrderStatus) {
		return nil, &backend.ValidationError{
			Message: fmt.Sprintf("cannot move order from %s to %s", current.OrderStatus, req.OrderStatus),
			Fields: []backend.FieldError{{
				Field:   "orderStatus",
				Tag:     "transition",
				Message: fmt.Sprintf("%s is not reachable from %s", req.OrderStatus, current.OrderStatus),
			}},
		}
	}

	updated, err := s.backend.UpdateOrderStatus(ctx, session, id, req.OrderStatus)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     current.OrderStatus,
		"to":       updated.OrderStatus,
		"admin_id": session.UserID,
	}).Info("Order status updated")

	s.notificationService.OrderUpdated(updated)
	return updated, nil
}

// WatchOrders keeps a filtered order list fresh on order creation and update.
func (s *OrderService) WatchOrders(ctx context.Context, session backend.Session, filter analytics.OrderFilter, onChange func([]models.Order)) (*refresh.Coordinator[[]models.Order], error) {
	coordinator := refresh.New[[]models.Order](s.channel, refresh.Options[[]models.Order]{
		Kinds: []events.Kind{events.OrderCreated, events.OrderUpdated},
		Fetch: func(ctx context.Context) ([]models.Order, error) {
			return s.ListOrders(ctx, session, filter)
		},
		OnChange: onChange,
		Logger:   s.logger.WithField("view", "orders"),
	})

	if err := coordinator.Start(ctx); err != nil {
		coordinator.Close()
		return nil, err
	}
	return coordinator, nil
}

// WatchOrder keeps one order fresh. An order_updated event carrying this
// order replaces it directly; any other update triggers a refetch.
func (s *OrderService) WatchOrder(ctx context.Context, session backend.Session, id string, onChange func(models.Order)) (*refresh.Coordinator[models.Order], error) {
	coordinator := refresh.New[models.Order](s.channel, refresh.Options[models.Order]{
		Kinds: []events.Kind{events.OrderUpdated},
		Fetch: func(ctx context.Context) (models.Order, error) {
			order, err := s.backend.GetOrder(ctx, session, id)
			if err != nil {
				return models.Order{}, err
			}
			return *order, nil
		},
		Apply:    applyOrderUpdate(id),
		OnChange: onChange,
		Logger:   s.logger.WithFields(logrus.Fields{"view": "order", "order_id": id}),
	})

	if err := coordinator.Start(ctx); err != nil {
		coordinator.Close()
		return nil, err
	}
	return coordinator, nil
}

func applyOrderUpdate(id string) refresh.ApplyFunc[models.Order] {
	return func(current models.Order, event events.Event) (models.Order, bool) {
		if event.Kind != events.OrderUpdated || event.ResourceID() != id {
			return current, false
		}
		var updated models.Order
		if err := json.Unmarshal(event.Payload, &updated); err != nil {
			return current, false
		}
		return updated, true
	}
}
