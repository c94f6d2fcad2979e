// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/config"
	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/handlers"
	"github.com/aurum-jewels/admin-console/internal/middleware"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/snapshot"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

// Dependencies are the long-lived collaborators the router wires into
// services. Publisher may be nil when the store backend announces its own
// changes on the channel.
type Dependencies struct {
	Backend   services.Backend
	Channel   events.Channel
	Publisher events.Publisher
	Audit     *services.AuditService
	Logger    *logrus.Logger
}

func Initialize(deps Dependencies, cfg *config.Config) (*gin.Engine, error) {
	logger := deps.Logger

	// Initialize services
	notificationService := services.NewNotificationService(deps.Publisher, logger)
	storageService, err := services.NewStorageService(cfg.AWS, deps.Backend, logger)
	if err != nil {
		return nil, err
	}
	loader := snapshot.NewLoader(deps.Backend, logger)

	authService := services.NewAuthService(deps.Backend, cfg, logger)
	dashboardService := services.NewDashboardService(loader, deps.Channel, cfg.Dashboard.TopLimit, logger)
	orderService := services.NewOrderService(deps.Backend, deps.Channel, notificationService, logger)
	productService := services.NewProductService(deps.Backend, notificationService, logger)
	categoryService := services.NewCategoryService(deps.Backend, deps.Channel, notificationService, logger)
	userService := services.NewUserService(deps.Backend, notificationService, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService)
	auditHandler := handlers.NewAuditHandler(deps.Audit)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	limits := middleware.NewRateLimits(cfg.RateLimit)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(limits.General)
	r.Use(middleware.AuditLogMiddleware(deps.Audit))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   "1.0.0",
			"transport": cfg.Events.Transport,
			"audit":     deps.Audit.Enabled(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(limits.Auth)
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.SessionRequired(), authHandler.Logout)
			auth.GET("/me", middleware.SessionRequired(), authHandler.GetProfile)
		}

		admin := v1.Group("")
		admin.Use(middleware.SessionRequired(), middleware.AdminRequired())
		{
			// Dashboard
			admin.GET("/dashboard", dashboardHandler.GetDashboard)
			admin.GET("/dashboard/live", dashboardHandler.StreamDashboard)
			admin.GET("/analytics/products", dashboardHandler.GetProductAnalytics)

			// Order management
			orders := admin.Group("/orders")
			{
				orders.GET("", orderHandler.GetOrders)
				orders.GET("/live", orderHandler.StreamOrders)
				orders.GET("/:id", orderHandler.GetOrder)
				orders.GET("/:id/live", orderHandler.StreamOrder)
				orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}

			// Catalog management
			products := admin.Group("/products")
			{
				products.GET("", productHandler.GetProducts)
				products.POST("", productHandler.CreateProduct)
				products.GET("/:id", productHandler.GetProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}
			admin.POST("/uploads", limits.Upload, productHandler.UploadProductImage)
			admin.DELETE("/uploads/*key", productHandler.DeleteProductImage)

			categories := admin.Group("/categories")
			{
				categories.GET("", categoryHandler.GetCategories)
				categories.GET("/live", categoryHandler.StreamCategories)
				categories.POST("", categoryHandler.CreateCategory)
				categories.DELETE("/:id", categoryHandler.DeleteCategory)
			}

			// Customer management
			users := admin.Group("/users")
			{
				users.GET("", userHandler.GetUsers)
				users.GET("/:id", userHandler.GetUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}

			admin.GET("/audit-logs", auditHandler.GetAuditLogs)
		}
	}

	return r, nil
}
