// internal/tests/console_test.go
package tests

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/config"
	"github.com/aurum-jewels/admin-console/internal/database"
	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/router"
	"github.com/aurum-jewels/admin-console/internal/services"
)

const storeToken = "store-token"

// fakeStore is an in-memory stand-in for the store REST backend.
type fakeStore struct {
	mu           sync.Mutex
	orders       map[string]models.Order
	failProducts bool
}

func newFakeStore() *fakeStore {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &fakeStore{
		orders: map[string]models.Order{
			"o1": {
				ID:          "o1",
				OrderID:     "ORD-1001",
				User:        &models.OrderCustomer{ID: "u1", Name: "Asha"},
				OrderItems:  []models.OrderItem{{Product: "P1", Name: "Gold Ring", Qty: 3, Price: 150}},
				TotalPrice:  500,
				IsPaid:      true,
				OrderStatus: models.OrderStatusProcessing,
				CreatedAt:   created,
			},
		},
	}
}

func (f *fakeStore) handler() http.Handler {
	r := gin.New()
	api := r.Group("/api")

	api.POST("/users/login", func(c *gin.Context) {
		var in backend.LoginInput
		c.ShouldBindJSON(&in)
		switch in.Email {
		case "admin@aurum.in":
			c.JSON(http.StatusOK, gin.H{"_id": "admin-1", "name": "Meera", "email": in.Email, "isAdmin": true, "token": storeToken})
		case "asha@example.com":
			c.JSON(http.StatusOK, gin.H{"_id": "u1", "name": "Asha", "email": in.Email, "isAdmin": false, "token": "customer-token"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		}
	})

	authed := api.Group("")
	authed.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+storeToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		c.Next()
	})

	authed.GET("/products", func(c *gin.Context) {
		f.mu.Lock()
		fail := f.failProducts
		f.mu.Unlock()
		if fail {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database offline"})
			return
		}
		c.JSON(http.StatusOK, []gin.H{
			{"_id": "P1", "name": "Gold Ring", "category": "Ring", "price": 150, "countInStock": 4, "rating": 4.5, "numReviews": 8},
		})
	})
	authed.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"_id": "admin-1", "name": "Meera", "isAdmin": true},
			{"_id": "u1", "name": "Asha", "isAdmin": false},
		})
	})
	authed.GET("/orders", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		orders := make([]models.Order, 0, len(f.orders))
		for _, o := range f.orders {
			orders = append(orders, o)
		}
		c.JSON(http.StatusOK, orders)
	})
	authed.GET("/orders/:id", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		order, ok := f.orders[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	})
	authed.PUT("/orders/:id/status", func(c *gin.Context) {
		var body backend.OrderStatusUpdate
		c.ShouldBindJSON(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		order, ok := f.orders[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		order.OrderStatus = body.OrderStatus
		f.orders[order.ID] = order
		c.JSON(http.StatusOK, order)
	})

	return r
}

type ConsoleTestSuite struct {
	suite.Suite
	store   *fakeStore
	backend *httptest.Server
	hub     *events.Hub
	audit   *services.AuditService
	db      *gorm.DB
	router  *gin.Engine
}

func (suite *ConsoleTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize())
}

func (suite *ConsoleTestSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	suite.store = newFakeStore()
	suite.backend = httptest.NewServer(suite.store.handler())

	db, err := database.Open(sqlite.Open("file::memory:"), config.DatabaseConfig{MaxOpenConns: 1})
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(db))
	suite.db = db

	suite.hub = events.NewHub(logger)
	suite.audit = services.NewAuditService(db, logger)

	cfg := &config.Config{
		Environment: "test",
		Backend:     config.BackendConfig{BaseURL: suite.backend.URL + "/api", Timeout: 2},
		JWT:         config.JWTConfig{SecretKey: "console-test-secret", SessionTTL: 1},
		Events:      config.EventsConfig{Transport: "none"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Dashboard:   config.DashboardConfig{TopLimit: 5},
	}

	suite.router, err = router.Initialize(router.Dependencies{
		Backend:   backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout(), logger),
		Channel:   suite.hub,
		Publisher: suite.hub,
		Audit:     suite.audit,
		Logger:    logger,
	}, cfg)
	suite.Require().NoError(err)
}

func (suite *ConsoleTestSuite) TearDownTest() {
	suite.audit.Wait()
	database.Close(suite.db)
	suite.backend.Close()
}

func (suite *ConsoleTestSuite) request(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reader = bytes.NewBuffer(jsonData)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *ConsoleTestSuite) login() string {
	w, response := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@aurum.in",
		"password": "secret",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := response["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	suite.Require().NotEmpty(token)
	return token
}

func (suite *ConsoleTestSuite) TestAdminLogin() {
	token := suite.login()

	w, response := suite.request("GET", "/v1/auth/me", token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	user := response["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(suite.T(), "admin-1", user["_id"])
}

func (suite *ConsoleTestSuite) TestCustomerLoginIsRefused() {
	w, response := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "asha@example.com",
		"password": "secret",
	})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *ConsoleTestSuite) TestBadCredentials() {
	w, _ := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ConsoleTestSuite) TestDashboardRequiresSession() {
	w, _ := suite.request("GET", "/v1/dashboard", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ConsoleTestSuite) TestDashboard() {
	token := suite.login()

	w, response := suite.request("GET", "/v1/dashboard", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := response["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(suite.T(), 500.0, summary["totalSales"])
	assert.Equal(suite.T(), 1.0, summary["totalOrders"])
	assert.Equal(suite.T(), 1.0, summary["totalCustomers"])

	top := data["topProducts"].([]interface{})
	suite.Require().Len(top, 1)
	assert.Equal(suite.T(), 3.0, top[0].(map[string]interface{})["qty"])
	assert.Equal(suite.T(), 450.0, top[0].(map[string]interface{})["revenue"])
}

func (suite *ConsoleTestSuite) TestBackendFailureIsBadGateway() {
	token := suite.login()
	suite.store.mu.Lock()
	suite.store.failProducts = true
	suite.store.mu.Unlock()

	w, response := suite.request("GET", "/v1/dashboard", token, nil)
	assert.Equal(suite.T(), http.StatusBadGateway, w.Code)
	assert.Equal(suite.T(), "BACKEND_UNAVAILABLE", response["error"].(map[string]interface{})["code"])
}

func (suite *ConsoleTestSuite) TestUnknownOrderIsNotFound() {
	token := suite.login()

	w, response := suite.request("GET", "/v1/orders/nope", token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NOT_FOUND", response["error"].(map[string]interface{})["code"])
}

func (suite *ConsoleTestSuite) TestOrderStatusUpdate() {
	token := suite.login()

	var published []events.Event
	_, err := suite.hub.Subscribe(events.OrderUpdated, func(e events.Event) { published = append(published, e) })
	suite.Require().NoError(err)

	w, response := suite.request("PUT", "/v1/orders/o1/status", token, map[string]interface{}{"orderStatus": "Accepted"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	order := response["data"].(map[string]interface{})["order"].(map[string]interface{})
	assert.Equal(suite.T(), "Accepted", order["orderStatus"])

	suite.Require().Len(published, 1)
	assert.Equal(suite.T(), "o1", published[0].ResourceID())

	w, response = suite.request("PUT", "/v1/orders/o1/status", token, map[string]interface{}{"orderStatus": "Delivered"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response["error"].(map[string]interface{})["code"])

	suite.audit.Wait()
	w, response = suite.request("GET", "/v1/audit-logs?resource_type=orders", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	logs := response["data"].([]interface{})
	assert.Len(suite.T(), logs, 2)
}

func (suite *ConsoleTestSuite) TestOrderFilters() {
	token := suite.login()

	w, response := suite.request("GET", "/v1/orders?status=Processing&search=asha", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), response["data"].([]interface{}), 1)

	w, response = suite.request("GET", "/v1/orders?delivered=true", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Len(suite.T(), response["data"].([]interface{}), 0)

	w, _ = suite.request("GET", "/v1/orders?status=Lost", token, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ConsoleTestSuite) TestProductAnalytics() {
	token := suite.login()

	w, response := suite.request("GET", "/v1/analytics/products?sort=revenue&order=asc", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	data := response["data"].(map[string]interface{})
	assert.Len(suite.T(), data["rows"].([]interface{}), 1)

	w, _ = suite.request("GET", "/v1/analytics/products?sort=secret", token, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// readEvent returns the name and data of the next server-sent event.
func readEvent(reader *bufio.Reader) (string, string, error) {
	var name, data string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "" && name != "":
			return name, data, nil
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func (suite *ConsoleTestSuite) TestLiveDashboard() {
	token := suite.login()
	server := httptest.NewServer(suite.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/v1/dashboard/live?access_token="+token, nil)
	suite.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)

	name, data, err := readEvent(reader)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "status", name)
	assert.JSONEq(suite.T(), `{"live":true}`, data)

	name, data, err = readEvent(reader)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "dashboard", name)
	assert.Contains(suite.T(), data, `"totalSales":500`)

	suite.store.mu.Lock()
	order := suite.store.orders["o1"]
	order.ID, order.TotalPrice = "o2", 250
	suite.store.orders["o2"] = order
	suite.store.mu.Unlock()
	suite.Require().NoError(suite.hub.Publish(events.Event{Kind: events.OrderCreated}))

	name, data, err = readEvent(reader)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "dashboard", name)
	assert.Contains(suite.T(), data, `"totalSales":750`)
}

func TestConsoleTestSuite(t *testing.T) {
	suite.Run(t, new(ConsoleTestSuite))
}

