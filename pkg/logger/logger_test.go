package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("catalog-test", "info", &buf)

	log.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog-test", entry["service"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("catalog-test", "warn", &buf)

	log.Info("dropped")
	assert.Empty(t, buf.Bytes())

	log.Warn("kept")
	assert.NotEmpty(t, buf.Bytes())
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("catalog-test", "info", &buf)

	ctx := NewContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))

	// Falls back to the default logger when nothing is stored.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithContext_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("catalog-test", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "req-7")
	WithContext(ctx, base).Info("tagged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-7", entry["correlation_id"])
}
