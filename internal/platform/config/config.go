package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service. Values come
// from environment variables so main stays lean; optional infrastructure
// (database, Redis, Kafka) is simply left unset in development and the
// service falls back to in-memory implementations.
type Config struct {
	Addr string

	// DatabaseURL enables the Postgres stores when set.
	DatabaseURL string
	// RedisAddr enables the Redis-backed rate limit buckets when set.
	RedisAddr string
	// KafkaBrokers enables the audit forwarder when non-empty.
	KafkaBrokers    []string
	KafkaAuditTopic string

	// FieldCryptSecret is the master secret the per-field data key is derived
	// from. Must be overridden in production.
	FieldCryptSecret string
	// IdentitySigningKey verifies the session provider's tokens.
	IdentitySigningKey string

	// Create-path rate limit: how many new applications one actor may submit
	// per window.
	CreateLimit  int
	CreateWindow time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:               envOr("LENDFOLD_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("LENDFOLD_DATABASE_URL"),
		RedisAddr:          os.Getenv("LENDFOLD_REDIS_ADDR"),
		KafkaAuditTopic:    envOr("LENDFOLD_KAFKA_AUDIT_TOPIC", "lendfold.audit"),
		FieldCryptSecret:   envOr("LENDFOLD_FIELD_SECRET", "dev-field-secret-change-in-production"),
		IdentitySigningKey: envOr("LENDFOLD_IDENTITY_KEY", "dev-identity-key-change-in-production"),
		CreateLimit:        envIntOr("LENDFOLD_CREATE_LIMIT", 5),
		CreateWindow:       envDurationOr("LENDFOLD_CREATE_WINDOW", time.Hour),
	}
	if brokers := os.Getenv("LENDFOLD_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
