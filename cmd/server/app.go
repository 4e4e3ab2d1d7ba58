package main

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mukundrex/flight-mcp-server/config"
	"github.com/mukundrex/flight-mcp-server/internal/amadeus"
	"github.com/mukundrex/flight-mcp-server/internal/bootstrap"
	"github.com/mukundrex/flight-mcp-server/internal/converter"
	"github.com/mukundrex/flight-mcp-server/internal/kafka"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
	"github.com/mukundrex/flight-mcp-server/internal/mcpserver"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
	"github.com/mukundrex/flight-mcp-server/internal/referencedata"
	"github.com/mukundrex/flight-mcp-server/internal/service/flights"
	"github.com/mukundrex/flight-mcp-server/internal/service/reference"
	"github.com/mukundrex/flight-mcp-server/internal/telemetry"
)

// app holds the wired services shared by serve and search.
type app struct {
	cfg        *config.Config
	registry   *prometheus.Registry
	metrics    *metrics.Registry
	references *reference.ReferenceService
	flights    *flights.FlightService
	producer   *kafka.Producer
	shutdown   func(context.Context) error
}

func newApp(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logging.Init(cfg.App.Env); err != nil {
		return nil, err
	}
	if cfg.Amadeus.APIKey == "" || cfg.Amadeus.APISecret == "" {
		logging.Warn("amadeus credentials are not set; vendor calls will fail",
			"env", "AMADEUS_API_KEY/AMADEUS_API_SECRET")
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logging.Warn("tracing disabled", "error", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewRegistry(registry)

	rates, err := converter.NewFixedRate(cfg.Currency.From, cfg.Currency.To, cfg.Currency.Rate)
	if err != nil {
		return nil, fmt.Errorf("currency: %w", err)
	}

	client := amadeus.NewClient(cfg.Amadeus, m)
	references := reference.NewReferenceService(client, m)

	opts := []flights.FlightServiceOption{
		flights.WithMaxResults(cfg.Search.MaxResults),
		flights.WithDefaultAdults(cfg.Search.DefaultAdults),
		flights.WithRangeConcurrency(cfg.Search.RangeConcurrency),
		flights.WithMetrics(m),
	}
	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := producer.CheckConnection(checkCtx); err != nil {
			logging.Warn("kafka unreachable, search events may be lost", "error", err)
		}
		cancel()
		opts = append(opts, flights.WithEvents(producer, cfg.Kafka.SearchEventsTopic))
	}

	return &app{
		cfg:        cfg,
		registry:   registry,
		metrics:    m,
		references: references,
		flights:    flights.NewFlightService(references, client, converter.New(rates), opts...),
		producer:   producer,
		shutdown:   shutdown,
	}, nil
}

func (a *app) mcpServer() *mcp.Server {
	return mcpserver.NewServer(
		&mcp.Implementation{Name: a.cfg.MCP.Name, Version: a.cfg.MCP.Version},
		mcpserver.Deps{
			Flights:    a.flights,
			References: a.references,
			Catalog:    referencedata.Load(),
			Metrics:    a.metrics,
		},
	)
}

func (a *app) bootstrapDeps() bootstrap.Deps {
	return bootstrap.Deps{
		MCP:        a.mcpServer(),
		Flights:    a.flights,
		References: a.references,
		Metrics:    a.metrics,
		Gatherer:   a.registry,
	}
}

func (a *app) Close() {
	if err := a.producer.Close(); err != nil {
		logging.Warn("close kafka producer", "error", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			logging.Warn("shutdown tracing", "error", err)
		}
	}
	_ = logging.Close()
}
