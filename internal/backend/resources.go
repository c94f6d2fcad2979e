// internal/backend/resources.go
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aurum-jewels/admin-console/internal/models"
)

// Products

func (c *Client) ListProducts(ctx context.Context, s Session) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, s, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, s Session, id string) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, s, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, s Session, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, s, http.MethodPost, "/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, s Session, id string, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, s, http.MethodPut, "/products/"+url.PathEscape(id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, s Session, id string) error {
	return c.doJSON(ctx, s, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// Categories

func (c *Client) ListCategories(ctx context.Context, s Session) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, s, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, s Session, in CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.doJSON(ctx, s, http.MethodPost, "/categories", in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, s Session, id string) error {
	return c.doJSON(ctx, s, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// Orders

func (c *Client) ListOrders(ctx context.Context, s Session) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, s, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListOrdersByUser(ctx context.Context, s Session, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, s, http.MethodGet, "/orders/user/"+url.PathEscape(userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, s Session, id string) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, s, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, s Session, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	body := OrderStatusUpdate{OrderStatus: status}
	if err := c.doJSON(ctx, s, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context, s Session) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, s, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, s Session, id string) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, s, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, s Session, id string, in UserUpdate) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, s, http.MethodPut, "/users/"+url.PathEscape(id), in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, s Session, id string) error {
	return c.doJSON(ctx, s, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// Auth

// Login exchanges credentials for the backend's user record and token. It
// does not check the admin flag; callers decide whether to accept the session.
func (c *Client) Login(ctx context.Context, in LoginInput) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := c.doJSON(ctx, Session{}, http.MethodPost, "/users/login", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Upload

// UploadImage posts the file as the multipart "image" field and returns the
// URL the backend stored it under.
func (c *Client) UploadImage(ctx context.Context, s Session, filename, contentType string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`,
		strings.ReplaceAll(filepath.Base(filename), `"`, `\"`)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", &FetchError{Method: http.MethodPost, Path: "/upload", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	s.authorize(req)

	var result UploadResult
	if err := c.send(req, "/upload", &result); err != nil {
		return "", err
	}
	if result.URL == "" {
		return "", &FetchError{Method: http.MethodPost, Path: "/upload", Err: fmt.Errorf("upload response has no url")}
	}
	return result.URL, nil
}
