// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/config"
	"github.com/aurum-jewels/admin-console/internal/database"
	"github.com/aurum-jewels/admin-console/internal/events"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/router"
	"github.com/aurum-jewels/admin-console/internal/services"
)

const streamRetryWait = 3 * time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Audit database is optional
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
	}

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize i18n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	channel, publisher, closeChannel, err := openChannel(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open push channel")
	}
	defer closeChannel()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	audit := services.NewAuditService(db, logger)
	defer audit.Wait()

	// Initialize router
	r, err := router.Initialize(router.Dependencies{
		Backend:   backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout(), logger),
		Channel:   channel,
		Publisher: publisher,
		Audit:     audit,
		Logger:    logger,
	}, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port":      cfg.Server.Port,
			"backend":   cfg.Backend.BaseURL,
			"transport": cfg.Events.Transport,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

// openChannel builds the configured push transport. The returned publisher is
// nil for the backend stream, where the store announces its own changes.
func openChannel(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (events.Channel, events.Publisher, func(), error) {
	switch cfg.Events.Transport {
	case "stream":
		client := events.NewStreamClient(cfg.Backend.BaseURL, cfg.Events.StreamPath, streamRetryWait, logger)
		go func() {
			if err := client.Run(ctx); err != nil && ctx.Err() == nil {
				logger.WithError(err).Error("Backend event stream stopped")
			}
		}()
		logger.WithField("url", client.URL()).Info("Listening to backend event stream")
		return client, nil, func() {}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:                  cfg.Redis.Addr(),
			Password:              cfg.Redis.Password,
			DB:                    cfg.Redis.DB,
			ContextTimeoutEnabled: true,
		})
		channel := events.NewRedisChannel(rdb, cfg.Redis.ChannelPrefix, logger)
		if err := channel.Start(ctx); err != nil {
			rdb.Close()
			return nil, nil, nil, err
		}
		return channel, channel, func() {
			channel.Close()
			rdb.Close()
		}, nil

	case "nats":
		channel, err := events.ConnectNATS(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := channel.Start(); err != nil {
			channel.Close()
			return nil, nil, nil, err
		}
		return channel, channel, func() { channel.Close() }, nil

	default:
		// In-process only: views refresh on changes made through this console.
		hub := events.NewHub(logger)
		return hub, hub, func() {}, nil
	}
}
