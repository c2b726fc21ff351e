package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the core runtime configuration for a service instance.
// It supports environment-based initialization, with sensible defaults.
type Config struct {
	ServiceName string // e.g. "supermarketd"
	Env         string // e.g. "dev", "prod"
	LogLevel    string // "debug", "info", etc.
	Port        int    // HTTP API port
	MetricsPort int    // Prometheus scrape port

	StoreBaseURL string        // remote product/dolar store base URL
	StoreTimeout time.Duration // per-request timeout against the remote store

	RedisAddr string // client-local KV storage for the rate fallback; empty disables it
	RedisDB   int
	RedisPass string

	NATSURL         string // e.g. nats://localhost:4222; empty disables event publishing
	OutboundSubject string // NATS subject for change events

	RequestsPerSecond int // outbound rate limit towards the remote store
	Burst             int
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName:       GetEnv("SERVICE_NAME", "supermarketd"),
		Env:               GetEnv("ENV", "dev"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		Port:              GetEnvInt("PORT", 9040),
		MetricsPort:       GetEnvInt("METRICS_PORT", 9041),
		StoreBaseURL:      GetEnv("STORE_BASE_URL", "http://localhost:3000"),
		StoreTimeout:      GetEnvDuration("STORE_TIMEOUT", 10*time.Second),
		RedisAddr:         GetEnv("REDIS_ADDR", ""),
		RedisDB:           GetEnvInt("REDIS_DB", 0),
		RedisPass:         GetEnv("REDIS_PASS", ""),
		NATSURL:           GetEnv("NATS_URL", ""),
		OutboundSubject:   GetEnv("OUTBOUND_SUBJECT", "evt.supermarket.change.v1"),
		RequestsPerSecond: GetEnvInt("STORE_RPS", 10),
		Burst:             GetEnvInt("STORE_BURST", 20),
	}

	return cfg
}
