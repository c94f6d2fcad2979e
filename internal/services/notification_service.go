// internal/services/notification_service.go
package services

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/models"
)

// NotificationService announces mutations made through the console on the
// push channel so other open views refresh. With a nil publisher it does
// nothing; that is the case when the store backend emits its own events.
type NotificationService struct {
	publisher events.Publisher
	logger    *logrus.Entry
}

func NewNotificationService(publisher events.Publisher, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		logger:    logger.WithField("service", "notification"),
	}
}

func (s *NotificationService) DataChanged(resource string) {
	s.publish(events.Event{Kind: events.DataUpdated}, logrus.Fields{"resource": resource})
}

func (s *NotificationService) OrderUpdated(order *models.Order) {
	if s == nil || s.publisher == nil {
		return
	}
	payload, err := json.Marshal(order)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode order_updated payload")
		return
	}
	s.publish(events.Event{Kind: events.OrderUpdated, Payload: payload}, logrus.Fields{"order_id": order.ID})
}

func (s *NotificationService) publish(event events.Event, fields logrus.Fields) {
	if s == nil || s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		s.logger.WithError(err).WithFields(fields).Warn("Failed to publish change event")
		return
	}
	s.logger.WithFields(fields).WithField("kind", event.Kind).Debug("Published change event")
}
