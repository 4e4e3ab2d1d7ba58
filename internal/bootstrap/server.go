package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mukundrex/flight-mcp-server/api"
	"github.com/mukundrex/flight-mcp-server/config"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
	"github.com/mukundrex/flight-mcp-server/internal/service/flights"
	"github.com/mukundrex/flight-mcp-server/internal/service/reference"
)

const shutdownTimeout = 5 * time.Second

type Deps struct {
	MCP        *mcp.Server
	Flights    flights.FlightUseCase
	References reference.ReferenceUseCase
	Metrics    *metrics.Registry
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// Run serves the MCP server over the configured transport and blocks until
// ctx is canceled or the transport fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	switch cfg.MCP.Transport {
	case config.TransportSSE:
		return runHTTP(ctx, cfg, deps)
	case config.TransportStdio, "":
		logging.Info("mcp server listening on stdio", "name", cfg.MCP.Name, "version", cfg.MCP.Version)
		if err := deps.MCP.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown transport %q", cfg.MCP.Transport)
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, deps Deps) error {
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("mcp server listening", "addr", httpSrv.Addr, "sse", "/sse", "messages", "/message")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("shutting down http server")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewHandler mounts the SSE transport, the REST API, health and metrics on
// one gin engine behind a permissive CORS policy.
func NewHandler(deps Deps) http.Handler {
	m := deps.Metrics
	if m == nil {
		m = metrics.Nop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestIDMiddleware(), api.MetricsMiddleware(m))

	sse := gin.WrapH(mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return deps.MCP }, nil))
	router.GET("/sse", sse)
	router.POST("/sse", sse)
	router.POST("/message", sse)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiGroup := router.Group("/api")
	if deps.Flights != nil {
		api.NewFlightHandler(deps.Flights).Register(apiGroup.Group("/flights"))
	}
	if deps.References != nil {
		api.NewReferenceHandler(deps.References).Register(apiGroup)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{api.RequestIDHeader},
	})(router)
}
