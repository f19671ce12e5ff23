package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Admin portal
	AdminPasswordHash string

	// Analytics cadence (seconds)
	HeartbeatIntervalSecs        int
	DashboardRefreshIntervalSecs int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                         getEnvOrDefault("PORT", "8080"),
		Env:                          getEnvOrDefault("ENV", "development"),
		DatabaseURL:                  mustGetEnv("DATABASE_URL"),
		RedisURL:                     mustGetEnv("REDIS_URL"),
		JWTSecret:                    mustGetEnv("JWT_SECRET"),
		AdminPasswordHash:            mustGetEnv("ADMIN_PASSWORD_HASH"),
		HeartbeatIntervalSecs:        getEnvAsIntOrDefault("ANALYTICS_HEARTBEAT_INTERVAL", 60),
		DashboardRefreshIntervalSecs: getEnvAsIntOrDefault("DASHBOARD_REFRESH_INTERVAL", 30),
		FrontendURL:                  getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
