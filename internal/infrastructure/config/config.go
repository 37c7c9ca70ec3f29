package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Scorer backends.
const (
	ScorerRules  = "rules"
	ScorerOpenAI = "openai"
)

// Config holds all configuration for the scamguard service.
type Config struct {
	Scorer   ScorerConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	GRPC     GRPCConfig
	Database DatabaseConfig
	// Service name for observability
	ServiceName string
	Environment string
	LogLevel    string
	LogFormat   string
	// OTLP gRPC endpoint for traces; empty disables export.
	OTLPEndpoint string
	GRPCPort     int
	HTTPPort     int
	// Requests per second allowed per client on the REST API; 0 disables limiting.
	RateLimit int
}

// DatabaseConfig holds PostgreSQL settings. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL           string
	MigrationsDir string
}

// KafkaConfig holds Kafka settings. No brokers means events are only logged.
type KafkaConfig struct {
	EventsTopic     string
	IntakeTopic     string
	ConsumerGroup   string
	// HandlerAttempts bounds how often an intake message is processed before
	// the consumer stops.
	HandlerAttempts int
	// SASL is enabled when a username is set.
	SASLMechanism   string
	SASLUsername    string
	SASLPassword    string
	Brokers         []string
	TLS             bool
}

// ScorerConfig selects and configures the risk scorer.
type ScorerConfig struct {
	Backend       string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
	MaxRetries    int
}

// RedisConfig configures the assessment cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// GRPCConfig holds gRPC server transport settings.
type GRPCConfig struct {
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

// Load reads configuration from environment variables with defaults. A .env
// file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		GRPCPort:     getEnvInt("GRPC_PORT", 8095),
		HTTPPort:     getEnvInt("HTTP_PORT", 9095),
		ServiceName:  getEnv("SERVICE_NAME", "scamguard"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RateLimit:    getEnvInt("RATE_LIMIT", 20),
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:         getEnvList("KAFKA_BROKERS"),
			EventsTopic:     getEnv("KAFKA_EVENTS_TOPIC", "scamguard.events"),
			IntakeTopic:     getEnv("KAFKA_INTAKE_TOPIC", ""),
			ConsumerGroup:   getEnv("KAFKA_CONSUMER_GROUP", "scamguard"),
			TLS:             getEnvBool("KAFKA_TLS", false),
			HandlerAttempts: getEnvInt("KAFKA_HANDLER_ATTEMPTS", 5),
			SASLMechanism:   getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:    getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:    getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Scorer: ScorerConfig{
			Backend:       strings.ToLower(getEnv("SCORER", ScorerRules)),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout:       getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
			MaxRetries:    getEnvInt("OPENAI_MAX_RETRIES", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("SCORE_CACHE_TTL", 24*time.Hour),
		},
		GRPC: GRPCConfig{
			TLSCertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
			Reflection:  getEnvBool("GRPC_REFLECTION", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks combinations that cannot work at runtime.
func (c Config) Validate() error {
	switch c.Scorer.Backend {
	case ScorerRules:
	case ScorerOpenAI:
		if c.Scorer.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when SCORER=%s", ScorerOpenAI)
		}
	default:
		return fmt.Errorf("unknown SCORER %q (want %s or %s)", c.Scorer.Backend, ScorerRules, ScorerOpenAI)
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.Kafka.IntakeTopic != "" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_INTAKE_TOPIC requires KAFKA_BROKERS")
	}
	return nil
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
