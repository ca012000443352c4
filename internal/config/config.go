package config

import (
	"os"
	"strconv"
	"time"

	"aviacao/internal/cache"
	"aviacao/internal/database"
	"aviacao/internal/messaging"
	"aviacao/internal/search"

	"github.com/joho/godotenv"
)

// Config holds the process-wide configuration
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	// Timezone applied to zone-less timestamps coming out of storage.
	// UTC unless the deployment says otherwise.
	AppTimezone string

	Database database.Config
	Cache    cache.Config
	NATS     messaging.Config
	Search   search.Config
}

// Load reads the configuration from environment variables, with an
// optional .env file for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		AppTimezone: getEnv("APP_TZ", "UTC"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "aviacao"),
			Password:           getEnv("DB_PASS", "aviacao"),
			DBName:             getEnv("DB_NAME", "aviacao"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_POOL_MAX_SIZE", 10),
			MaxIdleConns:       getEnvInt("DB_POOL_MIN_SIZE", 2),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Cache: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SEC", 30)) * time.Second,
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "aviacao"),
			ClientID:  getEnv("NATS_CLIENT_ID", "aviacao-api"),
		},

		Search: search.Config{
			URL:           getEnv("ES_URL", "http://localhost:9200"),
			Username:      getEnv("ES_USERNAME", ""),
			Password:      getEnv("ES_PASSWORD", ""),
			SalesIndex:    getEnv("ES_SALES_INDEX", "vendas"),
			CheckinsIndex: getEnv("ES_CHECKINS_INDEX", "checkins"),
			MaxRetries:    getEnvInt("ES_MAX_RETRIES", 3),
		},
	}
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable with a fallback default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
