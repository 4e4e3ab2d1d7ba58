// Package mcpserver exposes flight search over the Model Context Protocol:
// four tools, the airport and airline resources, and two prompt templates.
package mcpserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
	"github.com/mukundrex/flight-mcp-server/internal/referencedata"
	"github.com/mukundrex/flight-mcp-server/internal/service/flights"
)

// References answers get_airport_info and get_airline_info.
type References interface {
	Airport(ctx context.Context, code string) (domain.Airport, bool)
	Airline(ctx context.Context, code string) (domain.Airline, bool)
}

type Deps struct {
	Flights    flights.FlightUseCase
	References References
	Catalog    *referencedata.Catalog
	Metrics    *metrics.Registry
	// Now defaults to time.Now; the default search date is its UTC day.
	Now func() time.Time
}

type Server struct {
	flights    flights.FlightUseCase
	references References
	catalog    *referencedata.Catalog
	metrics    *metrics.Registry
	now        func() time.Time
}

// NewServer builds an MCP server with every tool, resource and prompt registered.
func NewServer(impl *mcp.Implementation, deps Deps) *mcp.Server {
	s := &Server{
		flights:    deps.Flights,
		references: deps.References,
		catalog:    deps.Catalog,
		metrics:    deps.Metrics,
		now:        deps.Now,
	}
	if s.catalog == nil {
		s.catalog = referencedata.Load()
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	server := mcp.NewServer(impl, nil)
	s.registerTools(server)
	s.registerResources(server)
	registerPrompts(server)
	return server
}

func (s *Server) today() string {
	return s.now().UTC().Format("2006-01-02")
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
