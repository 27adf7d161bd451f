package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr                string
	LogLevel            slog.Level
	PostgresDSN         string
	Redis               RedisConfig
	Kafka               KafkaConfig
	PartnerPublicKeyPEM string
	DeviceJWTSigningKey string
}

// RedisConfig holds connection settings for the blackout store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds connection settings for the partner delivery queue.
type KafkaConfig struct {
	Brokers       []string
	DeliveryTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Backends left unconfigured fall back to in-memory implementations at wiring
// time, which keeps local development dependency-free.
func FromEnv() Server {
	addr := os.Getenv("HAVEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	deliveryTopic := os.Getenv("HAVEN_DELIVERY_TOPIC")
	if deliveryTopic == "" {
		deliveryTopic = "partner.safety-signals"
	}

	jwtSigningKey := os.Getenv("DEVICE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:                addr,
		LogLevel:            parseLogLevel(os.Getenv("HAVEN_LOG_LEVEL")),
		PostgresDSN:         os.Getenv("DATABASE_URL"),
		Redis:               redisFromEnv(),
		Kafka:               KafkaConfig{Brokers: splitList(os.Getenv("KAFKA_BROKERS")), DeliveryTopic: deliveryTopic},
		PartnerPublicKeyPEM: os.Getenv("PARTNER_PUBLIC_KEY"),
		DeviceJWTSigningKey: jwtSigningKey,
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     intFromEnv("REDIS_POOL_SIZE", 10),
		MinIdleConns: intFromEnv("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
