// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the tableside client
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Storage StorageConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Kitchen KitchenConfig
	Session SessionConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// BackendConfig contains the restaurant backend API configuration
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	AdminHeader    string
}

// StorageConfig selects the local key-value cache backend
type StorageConfig struct {
	Backend string // "redis", "sqlite" or "memory"
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SQLiteConfig contains the embedded cache configuration
type SQLiteConfig struct {
	Path string
}

// KitchenConfig contains kitchen dashboard configuration
type KitchenConfig struct {
	PollInterval  time.Duration
	DashboardPort string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
}

// SessionConfig contains table session recovery configuration
type SessionConfig struct {
	RecoveryCooldown time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Tableside Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
			RequestTimeout: getEnvAsDuration("BACKEND_REQUEST_TIMEOUT", 10*time.Second),
			AdminHeader:    getEnv("BACKEND_ADMIN_HEADER", "x-admin-token"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "sqlite"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "tableside.db"),
		},
		Kitchen: KitchenConfig{
			PollInterval:  getEnvAsDuration("KITCHEN_POLL_INTERVAL", 5*time.Second),
			DashboardPort: getEnv("KITCHEN_DASHBOARD_PORT", "8081"),
			ReadTimeout:   getEnvAsDuration("KITCHEN_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:  getEnvAsDuration("KITCHEN_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:   getEnvAsDuration("KITCHEN_IDLE_TIMEOUT", 60*time.Second),
		},
		Session: SessionConfig{
			RecoveryCooldown: getEnvAsDuration("SESSION_RECOVERY_COOLDOWN", 5*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}

	switch c.Storage.Backend {
	case "redis", "sqlite", "memory":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of redis, sqlite, memory")
	}

	if c.Storage.Backend == "redis" && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.Storage.Backend == "sqlite" && c.SQLite.Path == "" {
		return fmt.Errorf("SQLITE_PATH is required")
	}

	if c.Kitchen.PollInterval <= 0 {
		return fmt.Errorf("KITCHEN_POLL_INTERVAL must be positive")
	}
	if c.Session.RecoveryCooldown <= 0 {
		return fmt.Errorf("SESSION_RECOVERY_COOLDOWN must be positive")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

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
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
