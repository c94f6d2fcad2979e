package services

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/models"
)

type mockBackend struct {
	mock.Mock
}

var _ Backend = (*mockBackend)(nil)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func (m *mockBackend) ListProducts(ctx context.Context, s backend.Session) ([]models.Product, error) {
	args := m.Called(ctx, s)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockBackend) ListOrders(ctx context.Context, s backend.Session) ([]models.Order, error) {
	args := m.Called(ctx, s)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *mockBackend) ListOrdersByUser(ctx context.Context, s backend.Session, userID string) ([]models.Order, error) {
	args := m.Called(ctx, s, userID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *mockBackend) ListUsers(ctx context.Context, s backend.Session) ([]models.User, error) {
	args := m.Called(ctx, s)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *mockBackend) GetProduct(ctx context.Context, s backend.Session, id string) (*models.Product, error) {
	args := m.Called(ctx, s, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockBackend) CreateProduct(ctx context.Context, s backend.Session, in backend.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, s, in)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockBackend) UpdateProduct(ctx context.Context, s backend.Session, id string, in backend.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, s, id, in)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockBackend) DeleteProduct(ctx context.Context, s backend.Session, id string) error {
	return m.Called(ctx, s, id).Error(0)
}

func (m *mockBackend) ListCategories(ctx context.Context, s backend.Session) ([]models.Category, error) {
	args := m.Called(ctx, s)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *mockBackend) CreateCategory(ctx context.Context, s backend.Session, in backend.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, s, in)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockBackend) DeleteCategory(ctx context.Context, s backend.Session, id string) error {
	return m.Called(ctx, s, id).Error(0)
}

func (m *mockBackend) GetOrder(ctx context.Context, s backend.Session, id string) (*models.Order, error) {
	args := m.Called(ctx, s, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *mockBackend) UpdateOrderStatus(ctx context.Context, s backend.Session, id string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, s, id, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *mockBackend) GetUser(ctx context.Context, s backend.Session, id string) (*models.User, error) {
	args := m.Called(ctx, s, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockBackend) UpdateUser(ctx context.Context, s backend.Session, id string, in backend.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, s, id, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockBackend) DeleteUser(ctx context.Context, s backend.Session, id string) error {
	return m.Called(ctx, s, id).Error(0)
}

func (m *mockBackend) Login(ctx context.Context, in backend.LoginInput) (*models.LoginResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*models.LoginResult)
	return result, args.Error(1)
}

func (m *mockBackend) UploadImage(ctx context.Context, s backend.Session, filename, contentType string, file io.Reader) (string, error) {
	data, _ := io.ReadAll(file)
	args := m.Called(ctx, s, filename, contentType, data)
	return args.String(0), args.Error(1)
}
