package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Geofencing Config
	DefaultCooldownSeconds int           `env:"GEOFENCE_DEFAULT_COOLDOWN_SECONDS" envDefault:"300"`
	DwellThreshold         time.Duration `env:"GEOFENCE_DWELL_THRESHOLD" envDefault:"10m"`

	// Group Separation Config
	SeparationMaxDistanceMeters float64       `env:"SEPARATION_MAX_DISTANCE_METERS" envDefault:"200"`
	SeparationCooldown          time.Duration `env:"SEPARATION_COOLDOWN" envDefault:"300s"`

	// Real-time channels (Redis Pub/Sub)
	PresenceChannel string `env:"PRESENCE_CHANNEL" envDefault:"group:presence"`
	PositionChannel string `env:"POSITION_CHANNEL"`
	TrackedEntityID string `env:"TRACKED_ENTITY_ID" envDefault:"self"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:                 os.Getenv("DATABASE_URL"),
		HTTPPort:                    getEnv("HTTP_PORT", "8080"),
		LogLevel:                    getEnv("LOG_LEVEL", "info"),
		RedisAddr:                   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                   os.Getenv("REDIS_PASSWORD"),
		RedisDB:                     getEnvAsInt("REDIS_DB", 0),
		WebhookURL:                  os.Getenv("WEBHOOK_URL"),
		WebhookSecret:               os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:              getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:           getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:            getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		DefaultCooldownSeconds:      getEnvAsInt("GEOFENCE_DEFAULT_COOLDOWN_SECONDS", 300),
		DwellThreshold:              getEnvAsDuration("GEOFENCE_DWELL_THRESHOLD", 10*time.Minute),
		SeparationMaxDistanceMeters: getEnvAsFloat("SEPARATION_MAX_DISTANCE_METERS", 200),
		SeparationCooldown:          getEnvAsDuration("SEPARATION_COOLDOWN", 300*time.Second),
		PresenceChannel:             getEnv("PRESENCE_CHANNEL", "group:presence"),
		PositionChannel:             os.Getenv("POSITION_CHANNEL"),
		TrackedEntityID:             getEnv("TRACKED_ENTITY_ID", "self"),
		StatsTimeWindowMinutes:      getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
