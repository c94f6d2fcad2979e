// internal/snapshot/loader.go
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/models"
)

// Source is the slice of the backend client the loader needs.
type Source interface {
	ListProducts(ctx context.Context, s backend.Session) ([]models.Product, error)
	ListOrders(ctx context.Context, s backend.Session) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, s backend.Session, userID string) ([]models.Order, error)
	ListUsers(ctx context.Context, s backend.Session) ([]models.User, error)
}

// Snapshot is one consistent read of the three collections. It is never
// partially filled: either every fetch succeeded or Load returned an error.
type Snapshot struct {
	Products  []models.Product
	Orders    []models.Order
	Users     []models.User
	FetchedAt time.Time
}

type Loader struct {
	source Source
	logger *logrus.Entry
}

func NewLoader(source Source, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{
		source: source,
		logger: logger.WithField("component", "snapshot-loader"),
	}
}

// Load fetches products, all orders and users in parallel.
func (l *Loader) Load(ctx context.Context, session backend.Session) (*Snapshot, error) {
	return l.load(ctx, session, func(ctx context.Context) ([]models.Order, error) {
		return l.source.ListOrders(ctx, session)
	})
}

// LoadForUser is Load with the order fetch scoped to one customer.
func (l *Loader) LoadForUser(ctx context.Context, session backend.Session, userID string) (*Snapshot, error) {
	return l.load(ctx, session, func(ctx context.Context) ([]models.Order, error) {
		return l.source.ListOrdersByUser(ctx, session, userID)
	})
}

func (l *Loader) load(ctx context.Context, session backend.Session, fetchOrders func(context.Context) ([]models.Order, error)) (*Snapshot, error) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var (
		products []models.Product
		orders   []models.Order
		users    []models.User
	)

	g.Go(func() error {
		var err error
		products, err = l.source.ListProducts(gctx, session)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = fetchOrders(gctx)
		if err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = l.source.ListUsers(gctx, session)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.WithError(err).Warn("Snapshot load failed")
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"products": len(products),
		"orders":   len(orders),
		"users":    len(users),
		"duration": time.Since(start).Milliseconds(),
	}).Debug("Snapshot loaded")

	return &Snapshot{
		Products:  products,
		Orders:    orders,
		Users:     users,
		FetchedAt: time.Now(),
	}, nil
}
