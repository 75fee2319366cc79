package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	BackendURL     string
	DatabaseDriver string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	Environment    string

	UploadProgressInterval time.Duration
	CatalogCacheTTL        time.Duration
	BackendTimeout         time.Duration

	Events EventConfig
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "course-studio.db"),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		Environment:    getEnv("ENVIRONMENT", "development"),

		UploadProgressInterval: time.Duration(getEnvInt("UPLOAD_PROGRESS_INTERVAL_MS", 50)) * time.Millisecond,
		CatalogCacheTTL:        time.Duration(getEnvInt("CATALOG_CACHE_TTL_S", 60)) * time.Second,
		BackendTimeout:         time.Duration(getEnvInt("BACKEND_TIMEOUT_S", 0)) * time.Second,

		Events: EventConfig{
			Enabled:      getEnvBool("EVENTS_ENABLED", false),
			Publisher:    getEnv("EVENTS_PUBLISHER", "channel"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			Topic:        getEnv("EVENTS_TOPIC", "course-studio.events"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
