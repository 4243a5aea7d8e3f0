package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, 30, cfg.FacetTTLSecs)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_HTTP_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "production", cfg.Environment)
	assert.Len(t, cfg.AllowedOrigins, 2)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "qa")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "1.5")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_DerivedValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "localhost", pg.Host)
	assert.Equal(t, 60*time.Minute, pg.MaxConnLifetime)

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 30*time.Second, cfg.FacetTTL())
	assert.Equal(t, "localhost:6379", cfg.Redis().Addr())
}
