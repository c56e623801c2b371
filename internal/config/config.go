package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// GuidelineProfile names the threshold preset the engine evaluates with.
	GuidelineProfile string

	// Geo lookup configuration (place name -> coordinates -> elevation).
	GeoEnabled   bool
	GeoTimeout   time.Duration
	GeoCacheSize int

	// RedisAddr enables the shared resolver cache when set; empty keeps the
	// in-process LRU only.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka audit publishing. Disabled unless brokers and a topic are set.
	KafkaBrokers    []string
	KafkaAuditTopic string
}

// AuditEnabled reports whether assessment audit publishing is configured.
func (c *Config) AuditEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaAuditTopic != ""
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geoTimeout, err := parseDuration("GEO_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	geoEnabled := true
	if v := os.Getenv("GEO_ENABLED"); v != "" {
		geoEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GuidelineProfile: envOrDefault("GUIDELINE_PROFILE", "wms-2024"),

		GeoEnabled:   geoEnabled,
		GeoTimeout:   geoTimeout,
		GeoCacheSize: envAsInt("GEO_CACHE_SIZE", 1000),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envAsInt("REDIS_DB", 0),

		KafkaBrokers:    parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaAuditTopic: os.Getenv("KAFKA_AUDIT_TOPIC"),
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.GeoCacheSize <= 0 {
		return nil, errors.New("GEO_CACHE_SIZE must be positive")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaAuditTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_AUDIT_TOPIC is not")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envAsInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
