// internal/services/dashboard_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/analytics"
	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/snapshot"
)

type DashboardService struct {
	loader  *snapshot.Loader
	channel events.Channel
	limit   int
	logger  *logrus.Entry
}

type ProductAnalyticsQuery struct {
	Search string
	Sort   string
	Order  analytics.SortOrder
}

func NewDashboardService(loader *snapshot.Loader, channel events.Channel, limit int, logger *logrus.Logger) *DashboardService {
	return &DashboardService{
		loader:  loader,
		channel: channel,
		limit:   limit,
		logger:  logger.WithField("service", "dashboard"),
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, session backend.Session) (*analytics.Dashboard, error) {
	snap, err := s.loader.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	dashboard := analytics.ComputeDashboard(snap, s.limit)
	return &dashboard, nil
}

func (s *DashboardService) ProductAnalytics(ctx context.Context, session backend.Session, q ProductAnalyticsQuery) (*analytics.ProductAnalytics, error) {
	if q.Sort != "" && !analytics.IsPerformanceField(q.Sort) {
		return nil, &backend.ValidationError{
			Message: "unknown sort field " + q.Sort,
			Fields:  []backend.FieldError{{Field: "sort", Tag: "oneof", Message: "unknown sort field"}},
		}
	}

	snap, err := s.loader.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	view := analytics.ComputeProductAnalytics(snap, q.Search, q.Sort, q.Order)
	return &view, nil
}

// WatchDashboard starts a coordinator that recomputes the dashboard on every
// data, order creation and order update event.
func (s *DashboardService) WatchDashboard(ctx context.Context, session backend.Session, onChange func(analytics.Dashboard)) (*refresh.Coordinator[analytics.Dashboard], error) {
	coordinator := refresh.New[analytics.Dashboard](s.channel, refresh.Options[analytics.Dashboard]{
		Kinds: events.Kinds,
		Fetch: func(ctx context.Context) (analytics.Dashboard, error) {
			snap, err := s.loader.Load(ctx, session)
			if err != nil {
				return analytics.Dashboard{}, err
			}
			return analytics.ComputeDashboard(snap, s.limit), nil
		},
		OnChange: onChange,
		Logger:   s.logger.WithField("view", "dashboard"),
	})

	if err := coordinator.Start(ctx); err != nil {
		coordinator.Close()
		return nil, err
	}
	return coordinator, nil
}
