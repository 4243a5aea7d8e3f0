// Package config loads the catalog service configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/dhyabi2/luxury-module-creator-sub000/pkg/config"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/database"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/validator"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// HTTP server
	HTTPPort         int      `env:"CATALOG_HTTP_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	RequestTimeoutMs int      `env:"REQUEST_TIMEOUT_MS" envDefault:"10000" validate:"min=0"`
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost" validate:"required"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"catalog" validate:"required"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"catalog_secret"`
	PostgresDB   string `env:"CATALOG_DB_NAME" envDefault:"catalog_db" validate:"required"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25" validate:"min=1"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5" validate:"min=0"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`
	RunMigrations         bool  `env:"RUN_MIGRATIONS" envDefault:"false"`

	// Redis facet cache
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379" validate:"min=1,max=65535"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"min=0,max=15"`
	RedisEnabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	FacetTTLSecs  int    `env:"FACET_CACHE_TTL_SECONDS" envDefault:"30" validate:"min=1"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"min=0,max=1"`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500" validate:"min=0"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate catalog config: %w", err)
	}
	return cfg, nil
}

// Postgres returns the connection settings in the shape the pool builder
// expects.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the cache connection settings.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// RequestTimeout returns the per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// FacetTTL returns the facet cache lifetime.
func (c *Config) FacetTTL() time.Duration {
	return time.Duration(c.FacetTTLSecs) * time.Second
}
