package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	AirportListURI     = "airport://list"
	AirportURITemplate = "airport://{code}"
	AirlineListURI     = "airline://list"

	airportScheme = "airport://"
	jsonMIMEType  = "application/json"
)

func (s *Server) registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         AirportListURI,
		Name:        "Airport List",
		Description: "List of all available airports with their details (loaded from airport_code.csv)",
		MIMEType:    jsonMIMEType,
	}, s.readAirportList)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: AirportURITemplate,
		Name:        "Individual Airport",
		Description: "Get details for a specific airport by its IATA/ICAO code (e.g., airport://JFK)",
		MIMEType:    jsonMIMEType,
	}, s.readAirport)

	server.AddResource(&mcp.Resource{
		URI:         AirlineListURI,
		Name:        "Airline List",
		Description: "List of all available airlines with their details",
		MIMEType:    jsonMIMEType,
	}, s.readAirlineList)
}

func (s *Server) readAirportList(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.catalog.Airports())
}

func (s *Server) readAirport(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	code := strings.TrimPrefix(uri, airportScheme)
	airport, ok := s.catalog.Airport(code)
	if !ok {
		return nil, &jsonrpc.Error{
			Code:    mcp.CodeResourceNotFound,
			Message: fmt.Sprintf("Airport not found: %s", code),
		}
	}
	return jsonResource(uri, airport)
}

func (s *Server) readAirlineList(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.catalog.Airlines())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	text, err := indentJSON(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: jsonMIMEType, Text: text}},
	}, nil
}
