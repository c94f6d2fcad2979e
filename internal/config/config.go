// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me-console-session-secret"

type Config struct {
	Environment string
	Server      ServerConfig
	Backend     BackendConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Events      EventsConfig
	Redis       RedisConfig
	NATS        NATSConfig
	AWS         AWSConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Dashboard   DashboardConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type BackendConfig struct {
	BaseURL string
	Timeout int // in seconds
}

type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey  string
	SessionTTL int // in hours
}

// EventsConfig selects the push channel transport: stream, redis, nats or none.
type EventsConfig struct {
	Transport  string
	StreamPath string
}

type RedisConfig struct {
	Host          string
	Port          string
	Password      string
	DB            int
	ChannelPrefix string
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type NATSConfig struct {
	URL           string
	SubjectPrefix string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // for S3-compatible stores; path-style addressing
	CloudFrontURL   string
}

// S3Enabled reports whether uploads go to S3 instead of the store backend.
func (a AWSConfig) S3Enabled() bool {
	return a.AccessKeyID != "" && a.S3Bucket != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond int
	Burst             int
	LoginsPerMinute   int
	UploadsPerMinute  int
}

type DashboardConfig struct {
	TopLimit int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 0), // streams stay open
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimSuffix(getEnv("BACKEND_API_URL", "http://localhost:5000/api"), "/"),
			Timeout: getEnvAsInt("BACKEND_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Enabled:      getEnvAsBool("AUDIT_DB_ENABLED", false),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "admin_console"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET", defaultJWTSecret),
			SessionTTL: getEnvAsInt("JWT_SESSION_TTL", 12),
		},
		Events: EventsConfig{
			Transport:  strings.ToLower(getEnv("EVENTS_TRANSPORT", "stream")),
			StreamPath: getEnv("EVENTS_STREAM_PATH", "/events"),
		},
		Redis: RedisConfig{
			Host:          getEnv("REDIS_HOST", "localhost"),
			Port:          getEnv("REDIS_PORT", "6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            getEnvAsInt("REDIS_DB", 0),
			ChannelPrefix: getEnv("REDIS_CHANNEL_PREFIX", "store:"),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", "nats://localhost:4222"),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "store."),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "jewelry-product-images"),
			S3Endpoint:      getEnv("AWS_S3_ENDPOINT", ""),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
			LoginsPerMinute:   getEnvAsInt("RATE_LIMIT_LOGINS_PER_MINUTE", 5),
			UploadsPerMinute:  getEnvAsInt("RATE_LIMIT_UPLOADS_PER_MINUTE", 10),
		},
		Dashboard: DashboardConfig{
			TopLimit: getEnvAsInt("DASHBOARD_TOP_LIMIT", 5),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_API_URL must be an absolute URL, got %q", c.Backend.BaseURL)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	switch c.Events.Transport {
	case "stream", "redis", "nats", "none":
	default:
		return fmt.Errorf("unknown EVENTS_TRANSPORT %q", c.Events.Transport)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond < 1 || c.RateLimit.Burst < 1 ||
		c.RateLimit.LoginsPerMinute < 1 || c.RateLimit.UploadsPerMinute < 1) {
		return fmt.Errorf("rate limits must be positive")
	}

	if c.Database.Enabled && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (b BackendConfig) RequestTimeout() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
