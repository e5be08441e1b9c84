package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string

	// Redis
	RedisAddr string

	// Kafka
	KafkaBrokers string
	KafkaTopic   string

	// API Configuration
	APIPort string
	APIHost string

	// Shopify
	ShopifyStoreDomain string
	ShopifyAccessToken string
	ShopifyAPIVersion  string

	// Inventory location; 0 means "use the first location the store returns"
	ShopifyLocationID int64

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite://vaultgate.db"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "catalog-events"),
		APIPort:            getEnv("API_PORT", "8080"),
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		ShopifyStoreDomain: getEnv("SHOPIFY_STORE_DOMAIN", ""),
		ShopifyAccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyAPIVersion:  getEnv("SHOPIFY_API_VERSION", "2025-07"),
		ShopifyLocationID:  getEnvAsInt64("SHOPIFY_LOCATION_ID", 0),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
