package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion string

	// Table configuration
	GamesTable       string
	UsersTable       string
	WatchlistTable   string
	ReviewsTable     string
	ReviewsGameIndex string

	// Store backend: "dynamodb" or "memory" (local development).
	StoreBackend string

	// Authentication
	JWTSecret string
	JWTIssuer string
	AdminKey  string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables.
// Store backend selectors for Config.StoreBackend.
const (
	StoreBackendDynamoDB = "dynamodb"
	StoreBackendMemory   = "memory"
)

func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "eu-central-1"),

		GamesTable:       getEnv("GAMES_TABLE", "Games"),
		UsersTable:       getEnv("USERS_TABLE", "Users"),
		WatchlistTable:   getEnv("WATCHLIST_TABLE", "Watchlist"),
		ReviewsTable:     getEnv("REVIEWS_TABLE", "Reviews"),
		ReviewsGameIndex: getEnv("REVIEWS_GAME_INDEX", "game_id-index"),

		StoreBackend: getEnv("STORE_BACKEND", StoreBackendDynamoDB),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "gamewatch-backend"),
		AdminKey:  getEnv("ADMIN_KEY", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present.
func (c *Config) Validate() error {
	if c.StoreBackend != StoreBackendDynamoDB && c.StoreBackend != StoreBackendMemory {
		return fmt.Errorf("STORE_BACKEND must be 'dynamodb' or 'memory', got %q", c.StoreBackend)
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.AdminKey == "" {
			return fmt.Errorf("ADMIN_KEY is required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
