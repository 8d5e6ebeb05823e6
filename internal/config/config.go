package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Addr     string
	DataDir  string
	DBPath   string
	LogLevel string
	NodeID   int64

	// AllowedURLKeys is the raw comma-separated list of permitted URL keys.
	// It is split on commas verbatim: entries are not trimmed or deduplicated.
	AllowedURLKeys string

	StoreTimeout     time.Duration
	StoreConcurrency int64
	StoreRateLimit   int

	OutboundProxy string
	IPStack       string

	NATSURL string

	SwaggerEnabled bool
}

func Load() Config {
	addr := getEnv("URLBOARD_ADDR", ":8080")
	dataDir := getEnv("URLBOARD_DATA_DIR", "data")
	dbPath := os.Getenv("URLBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "urlboard.db")
	}

	return Config{
		Addr:             addr,
		DataDir:          filepath.Clean(dataDir),
		DBPath:           filepath.Clean(dbPath),
		LogLevel:         getEnv("URLBOARD_LOG_LEVEL", "info"),
		NodeID:           getEnvInt64("URLBOARD_NODE_ID", 0),
		AllowedURLKeys:   os.Getenv("URLBOARD_ALLOWED_URL_KEYS"),
		StoreTimeout:     getEnvDuration("URLBOARD_STORE_TIMEOUT", 10*time.Second),
		StoreConcurrency: getEnvInt64("URLBOARD_STORE_CONCURRENCY", 8),
		StoreRateLimit:   int(getEnvInt64("URLBOARD_STORE_RATE_LIMIT", 60)),
		OutboundProxy:    os.Getenv("URLBOARD_OUTBOUND_PROXY"),
		IPStack:          getEnv("URLBOARD_IP_STACK", "default"),
		NATSURL:          os.Getenv("URLBOARD_NATS_URL"),
		SwaggerEnabled:   getEnvBool("URLBOARD_SWAGGER", false),
	}
}

func getEnv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(name string, fallback int64) int64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getEnvBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
