package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string

	// Authentication
	JWTSecret string
	JWTIssuer string
	JWTExpiry time.Duration

	// Geocoding
	GeocodeBaseURL string
	GeocodeTimeout time.Duration

	// Logging and features
	LogLevel   string
	EnableCORS bool

	// Rate limiting
	AuthRequestsPerMinute int
	APIRequestsPerMinute  int
}

// LoadConfig loads configuration from environment variables. A local .env
// file is read first when present; real environment variables win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("DYNAMODB_TABLE", "lifemap"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "lifemap-backend"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout: getEnvDuration("GEOCODE_TIMEOUT", 5*time.Second),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),

		AuthRequestsPerMinute: getEnvInt("AUTH_REQUESTS_PER_MINUTE", 20),
		APIRequestsPerMinute:  getEnvInt("API_REQUESTS_PER_MINUTE", 300),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
	}

	if c.GeocodeBaseURL == "" {
		return fmt.Errorf("GEOCODE_BASE_URL must not be empty")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
