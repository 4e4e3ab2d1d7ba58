package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, TransportStdio, cfg.MCP.Transport)
	assert.Equal(t, "ct-flight-mcp-server", cfg.MCP.Name)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, 102.57, cfg.Currency.Rate)
	assert.Equal(t, "localhost:3000", cfg.HTTP.Address())
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.Host())
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
mcp:
  transport: sse
http:
  host: 0.0.0.0
  port: 8080
amadeus:
  environment: production
search:
  range_concurrency: 3
kafka:
  brokers: ["kafka:9092"]
`)
	t.Setenv("PORT", "9090")
	t.Setenv("AMADEUS_API_KEY", "key")
	t.Setenv("AMADEUS_API_SECRET", "secret")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, TransportSSE, cfg.MCP.Transport)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "key", cfg.Amadeus.APIKey)
	assert.Equal(t, "secret", cfg.Amadeus.APISecret)
	assert.Equal(t, "https://api.amadeus.com", cfg.Amadeus.Host())
	assert.Equal(t, 3, cfg.Search.RangeConcurrency)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_BrokersFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidTransport(t *testing.T) {
	path := writeConfig(t, "mcp:\n  transport: websocket\n")

	_, err := LoadConfig(path)

	assert.ErrorContains(t, err, "invalid transport")
}

func TestAmadeusConfig_BaseURLOverride(t *testing.T) {
	a := AmadeusConfig{Environment: EnvironmentProduction, BaseURL: "http://localhost:1234"}
	assert.Equal(t, "http://localhost:1234", a.Host())
}
