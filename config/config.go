package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"

	EnvironmentTest       = "test"
	EnvironmentProduction = "production"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	MCP       MCPConfig       `yaml:"mcp"`
	HTTP      HTTPConfig      `yaml:"http"`
	Amadeus   AmadeusConfig   `yaml:"amadeus"`
	Search    SearchConfig    `yaml:"search"`
	Currency  CurrencyConfig  `yaml:"currency"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type AppConfig struct {
	Env string `yaml:"env" env:"APP_ENV"`
}

type MCPConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport" env:"MCP_TRANSPORT"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

func (h HTTPConfig) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

type AmadeusConfig struct {
	APIKey         string `yaml:"api_key" env:"AMADEUS_API_KEY"`
	APISecret      string `yaml:"api_secret" env:"AMADEUS_API_SECRET"`
	Environment    string `yaml:"environment" env:"AMADEUS_ENVIRONMENT"`
	BaseURL        string `yaml:"base_url" env:"AMADEUS_BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Host returns the API root for the configured environment unless BaseURL overrides it.
func (a AmadeusConfig) Host() string {
	if a.BaseURL != "" {
		return a.BaseURL
	}
	if a.Environment == EnvironmentProduction {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

type SearchConfig struct {
	MaxResults       int `yaml:"max_results"`
	DefaultAdults    int `yaml:"default_adults"`
	RangeConcurrency int `yaml:"range_concurrency" env:"SEARCH_RANGE_CONCURRENCY"`
}

// CurrencyConfig describes the static conversion applied to vendor prices.
// The rate is fixed and does not track the market.
type CurrencyConfig struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Rate float64 `yaml:"rate"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" envSeparator:","`
	SearchEventsTopic string   `yaml:"search_events_topic" env:"KAFKA_SEARCH_TOPIC"`
	GroupID           string   `yaml:"group_id" env:"KAFKA_GROUP_ID"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.SearchEventsTopic != ""
}

type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{Env: "development"},
		MCP: MCPConfig{
			Name:      "ct-flight-mcp-server",
			Version:   "1.0.0",
			Transport: TransportStdio,
		},
		HTTP: HTTPConfig{Host: "localhost", Port: 3000},
		Amadeus: AmadeusConfig{
			Environment:    EnvironmentTest,
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			MaxResults:       10,
			DefaultAdults:    1,
			RangeConcurrency: 1,
		},
		Currency: CurrencyConfig{From: "EUR", To: "INR", Rate: 102.57},
		Kafka: KafkaConfig{
			SearchEventsTopic: "flight-search-events",
			GroupID:           "flight-search-audit",
		},
		Telemetry: TelemetryConfig{ServiceName: "flight-mcp-server"},
	}
}

// LoadConfig layers the YAML file at path (skipped when empty) and then the
// environment over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("invalid transport %q: want %s or %s", c.MCP.Transport, TransportStdio, TransportSSE)
	}

	switch c.Amadeus.Environment {
	case EnvironmentTest, EnvironmentProduction:
	default:
		return fmt.Errorf("invalid amadeus environment %q", c.Amadeus.Environment)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive")
	}
	if c.Search.DefaultAdults <= 0 {
		return fmt.Errorf("search.default_adults must be positive")
	}
	if c.Search.RangeConcurrency <= 0 {
		return fmt.Errorf("search.range_concurrency must be positive")
	}
	if c.Currency.Rate <= 0 {
		return fmt.Errorf("currency.rate must be positive")
	}
	return nil
}
