// Package config builds process configuration from environment variables so
// main stays lean. Every knob has a development default; production
// deployments override via the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// IdentityProviderMode selects the identity provider implementation at
// startup. The decision pipeline never branches on process mode itself; the
// substitution happens once, here.
type IdentityProviderMode string

const (
	ProviderModeLive IdentityProviderMode = "live"
	ProviderModeMock IdentityProviderMode = "mock"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	ServiceName   string
	JWTSigningKey string
	JWTIssuer     string
}

// Identity configures the external identity provider client.
type Identity struct {
	Mode    IdentityProviderMode
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Postgres configures the reference data store. Empty URL means the process
// runs on in-memory stores (development, tests).
type Postgres struct {
	URL string
}

// Redis configures the velocity counter store. Empty URL disables Redis and
// falls back to in-memory counters.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the audit event bus. Empty broker list disables the
// Kafka sink; audit events then go to the configured store only.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Identity Identity
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:          envOr("LENDGATE_ADDR", ":8080"),
			ServiceName:   envOr("LENDGATE_SERVICE_NAME", "lendgate"),
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     envOr("JWT_ISSUER", "lendgate"),
		},
		Identity: Identity{
			Mode:    IdentityProviderMode(envOr("IDENTITY_PROVIDER", string(ProviderModeMock))),
			BaseURL: os.Getenv("IDENTITY_PROVIDER_URL"),
			APIKey:  os.Getenv("IDENTITY_PROVIDER_API_KEY"),
			Timeout: envDurationOr("IDENTITY_PROVIDER_TIMEOUT", 30*time.Second),
		},
		Postgres: Postgres{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "lendgate.audit.decisions"),
		},
	}

	switch cfg.Identity.Mode {
	case ProviderModeLive, ProviderModeMock:
	default:
		return Config{}, fmt.Errorf("IDENTITY_PROVIDER must be %q or %q, got %q",
			ProviderModeLive, ProviderModeMock, cfg.Identity.Mode)
	}
	if cfg.Identity.Mode == ProviderModeLive && cfg.Identity.BaseURL == "" {
		return Config{}, fmt.Errorf("IDENTITY_PROVIDER_URL is required in live mode")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
