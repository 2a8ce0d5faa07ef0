package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Tokens   TokenConfig
	Redis    RedisConfig
	Queue    QueueConfig
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port int
}

// DatabaseConfig holds the database configuration. Backend selects the
// repository implementation: "postgres" or "memory".
type DatabaseConfig struct {
	Backend    string
	Host       string
	Port       int
	Username   string
	Password   string
	DBName     string
	SSLMode    string
	TestDBName string // Separate database for testing
}

// AuthConfig holds the authentication configuration. AllowUserIDHeader
// enables the legacy User-Id header identity on authenticated routes;
// it is off unless explicitly switched on.
type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AllowUserIDHeader bool
}

// TokenConfig holds the token economy configuration
type TokenConfig struct {
	StartingBalance int
	PricePerToken   float64
	ImageCost       int
	AudioCost       int
	SummaryCost     int
}

// RedisConfig holds the login rate limiter configuration. The limiter
// is disabled when Addr is empty.
type RedisConfig struct {
	Addr        string
	Password    string
	LoginLimit  int
	LoginWindow time.Duration
}

// QueueConfig holds the generation event publisher configuration. The
// publisher is disabled when URL is empty.
type QueueConfig struct {
	URL       string
	QueueName string
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
	)
}

// LoadConfig loads the configuration from the environment, reading a
// .env file first when one is present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Backend:    getEnv("STORE_BACKEND", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvAsInt("DB_PORT", 5432),
			Username:   getEnv("DB_USERNAME", "postgres"),
			Password:   getEnv("DB_PASSWORD", "password"),
			DBName:     getEnv("DB_NAME", "storyforge"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			TestDBName: getEnv("TEST_DB_NAME", "storyforge_test"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-here"),
			TokenTTL:          getEnvAsDuration("JWT_TTL", 24*time.Hour),
			AllowUserIDHeader: getEnvAsBool("ALLOW_USER_ID_HEADER", false),
		},
		Tokens: TokenConfig{
			StartingBalance: getEnvAsInt("TOKEN_STARTING_BALANCE", 20),
			PricePerToken:   getEnvAsFloat("TOKEN_PRICE", 0.01),
			ImageCost:       getEnvAsInt("TOKEN_COST_IMAGE", 30),
			AudioCost:       getEnvAsInt("TOKEN_COST_AUDIO", 20),
			SummaryCost:     getEnvAsInt("TOKEN_COST_SUMMARY", 10),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			LoginLimit:  getEnvAsInt("LOGIN_RATE_LIMIT", 10),
			LoginWindow: getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		},
		Queue: QueueConfig{
			URL:       getEnv("RABBITMQ_URL", ""),
			QueueName: getEnv("GENERATION_QUEUE", "generation.completed"),
		},
	}
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
