package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
	"github.com/mukundrex/flight-mcp-server/internal/service/flights"
)

const (
	ToolSearchFlights      = "search_flights"
	ToolSearchFlightsRange = "search_flights_range"
	ToolAirportInfo        = "get_airport_info"
	ToolAirlineInfo        = "get_airline_info"
)

type SearchFlightsArgs struct {
	From              string `json:"from" jsonschema:"Origin airport code (e.g., JFK, LAX)"`
	To                string `json:"to" jsonschema:"Destination airport code (e.g., LHR, CDG)"`
	Date              string `json:"date,omitempty" jsonschema:"Departure date in YYYY-MM-DD format (optional, defaults to current date)"`
	IncludeConnecting *bool  `json:"include_connecting,omitempty" jsonschema:"Include connecting flights in search results (default: true)"`
	Adults            int    `json:"adults,omitempty" jsonschema:"Number of adult passengers (optional, default: 1)"`
}

type SearchFlightsRangeArgs struct {
	From              string `json:"from" jsonschema:"Origin airport code (e.g., JFK, LAX)"`
	To                string `json:"to" jsonschema:"Destination airport code (e.g., LHR, CDG)"`
	StartDate         string `json:"start_date" jsonschema:"Start date in YYYY-MM-DD format"`
	EndDate           string `json:"end_date" jsonschema:"End date in YYYY-MM-DD format"`
	StartTime         string `json:"start_time,omitempty" jsonschema:"Earliest departure time in HH:MM format (optional)"`
	EndTime           string `json:"end_time,omitempty" jsonschema:"Latest departure time in HH:MM format (optional)"`
	IncludeConnecting *bool  `json:"include_connecting,omitempty" jsonschema:"Include connecting flights in search results (default: true)"`
	Adults            int    `json:"adults,omitempty" jsonschema:"Number of adult passengers (optional, default: 1)"`
}

type AirportInfoArgs struct {
	Code string `json:"code" jsonschema:"Airport code (e.g., JFK, LAX)"`
}

type AirlineInfoArgs struct {
	Code string `json:"code" jsonschema:"Airline code (e.g., AA, BA)"`
}

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchFlights,
		Description: "Search for available flights between two airports on a specific date",
	}, s.searchFlights)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchFlightsRange,
		Description: "Search for available flights between two airports within a date range and time range",
	}, s.searchFlightsRange)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolAirportInfo,
		Description: "Get detailed information about a specific airport",
	}, s.airportInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolAirlineInfo,
		Description: "Get detailed information about a specific airline",
	}, s.airlineInfo)
}

func (s *Server) searchFlights(ctx context.Context, _ *mcp.CallToolRequest, args SearchFlightsArgs) (*mcp.CallToolResult, any, error) {
	date := args.Date
	if date == "" {
		date = s.today()
	}

	result, err := s.flights.Search(ctx, flights.SearchInput{
		Origin:      strings.ToUpper(args.From),
		Destination: strings.ToUpper(args.To),
		Date:        date,
		Adults:      args.Adults,
	})
	if err != nil {
		return s.fail(ToolSearchFlights, "Flight search failed: %v", err), nil, nil
	}
	if !includeConnecting(args.IncludeConnecting) {
		result.Connecting = []domain.FlightConnection{}
	}
	return s.ok(ToolSearchFlights, result), nil, nil
}

func (s *Server) searchFlightsRange(ctx context.Context, _ *mcp.CallToolRequest, args SearchFlightsRangeArgs) (*mcp.CallToolResult, any, error) {
	window := flights.DepartureWindow{From: args.StartTime, To: args.EndTime}
	if err := window.Validate(); err != nil {
		return s.fail(ToolSearchFlightsRange, "Flight range search failed: %v", err), nil, nil
	}

	results, err := s.flights.SearchRange(ctx, flights.RangeInput{
		Origin:      strings.ToUpper(args.From),
		Destination: strings.ToUpper(args.To),
		StartDate:   args.StartDate,
		EndDate:     args.EndDate,
		Adults:      args.Adults,
	})
	if err != nil {
		return s.fail(ToolSearchFlightsRange, "Flight range search failed: %v", err), nil, nil
	}
	return s.ok(ToolSearchFlightsRange, flights.FilterRange(results, window, includeConnecting(args.IncludeConnecting))), nil, nil
}

func (s *Server) airportInfo(ctx context.Context, _ *mcp.CallToolRequest, args AirportInfoArgs) (*mcp.CallToolResult, any, error) {
	code := strings.ToUpper(args.Code)
	airport, ok := s.references.Airport(ctx, code)
	if !ok {
		return s.fail(ToolAirportInfo, "Airport lookup failed: Airport not found: %s", code), nil, nil
	}
	return s.ok(ToolAirportInfo, airport), nil, nil
}

func (s *Server) airlineInfo(ctx context.Context, _ *mcp.CallToolRequest, args AirlineInfoArgs) (*mcp.CallToolResult, any, error) {
	code := strings.ToUpper(args.Code)
	airline, ok := s.references.Airline(ctx, code)
	if !ok {
		return s.fail(ToolAirlineInfo, "Airline lookup failed: Airline not found: %s", code), nil, nil
	}
	return s.ok(ToolAirlineInfo, airline), nil, nil
}

func (s *Server) ok(tool string, v any) *mcp.CallToolResult {
	text, err := indentJSON(v)
	if err != nil {
		return s.fail(tool, "encode result: %v", err)
	}
	s.metrics.ToolCallsTotal.WithLabelValues(tool, "ok").Inc()
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (s *Server) fail(tool, format string, args ...any) *mcp.CallToolResult {
	msg := fmt.Sprintf(format, args...)
	logging.Warn("tool call failed", "tool", tool, "error", msg)
	s.metrics.ToolCallsTotal.WithLabelValues(tool, "error").Inc()
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// includeConnecting treats a missing flag as true.
func includeConnecting(v *bool) bool {
	return v == nil || *v
}
