package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	strutil "riskgate/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// RedisConfig holds connection settings for the scale cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the audit event sink. Empty brokers disable
// the sink.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// ScaleCacheTTL bounds staleness of the cached scale table. Scales change
// rarely; a short TTL keeps manual reconfiguration visible without a flush.
var ScaleCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("RISKGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("RISKGATE_AUDIT_TOPIC")
	if topic == "" {
		topic = "riskgate.audit"
	}

	brokers := strutil.DedupeAndTrim(strings.Split(os.Getenv("KAFKA_BROKERS"), ","))

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:    brokers,
			AuditTopic: topic,
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
