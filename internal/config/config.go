package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret   string
	TokenExpiry time.Duration

	// Superuser bootstrap
	SuperuserUsername string
	SuperuserPassword string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgetbook"),
		DBPassword: getEnv("DB_PASSWORD", "budgetbook"),
		DBName:     getEnv("DB_NAME", "budgetbook"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Superuser bootstrap; seeding is skipped when either is empty
		SuperuserUsername: getEnv("SUPERUSER_USERNAME", ""),
		SuperuserPassword: getEnv("SUPERUSER_PASSWORD", ""),
	}

	// Parse token expiry in minutes
	expStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	expMinutes, err := strconv.Atoi(expStr)
	if err != nil || expMinutes <= 0 {
		log.Printf("Warning: invalid ACCESS_TOKEN_EXPIRE_MINUTES value '%s', falling back to 30\n", expStr)
		expMinutes = 30
	}
	config.TokenExpiry = time.Duration(expMinutes) * time.Minute

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
