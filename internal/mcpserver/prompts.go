package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	PromptFlightSearchQuery = "flight_search_query"
	PromptFlightComparison  = "flight_comparison"

	defaultCriteria = "price, duration, and convenience"
)

func registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        PromptFlightSearchQuery,
		Description: "Generate a natural language flight search query",
		Arguments: []*mcp.PromptArgument{
			{Name: "from_city", Description: "Departure city or airport", Required: true},
			{Name: "to_city", Description: "Destination city or airport", Required: true},
			{Name: "travel_date", Description: "Travel date (optional)"},
			{Name: "return_date", Description: "Return date for round trip (optional)"},
			{Name: "passengers", Description: "Number of passengers (optional, default: 1)"},
			{Name: "class", Description: "Travel class preference (economy, business, first)"},
		},
	}, flightSearchQuery)

	server.AddPrompt(&mcp.Prompt{
		Name:        PromptFlightComparison,
		Description: "Generate a prompt for comparing multiple flights",
		Arguments: []*mcp.PromptArgument{
			{Name: "flights_data", Description: "JSON data of flights to compare", Required: true},
			{Name: "criteria", Description: "Comparison criteria (price, duration, convenience, etc.)"},
		},
	}, flightComparison)
}

func flightSearchQuery(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	from, to := args["from_city"], args["to_city"]
	if from == "" || to == "" {
		return nil, errors.New("from_city and to_city are required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Find flights from %s to %s", from, to)
	if d := args["travel_date"]; d != "" {
		fmt.Fprintf(&b, " on %s", d)
	}
	if d := args["return_date"]; d != "" {
		fmt.Fprintf(&b, " returning on %s", d)
	}
	if p := args["passengers"]; p != "" && p != "1" {
		fmt.Fprintf(&b, " for %s passengers", p)
	}
	if c := args["class"]; c != "" {
		fmt.Fprintf(&b, " in %s class", c)
	}
	b.WriteString(". Please include both direct flights and connecting flights with reasonable layover times. " +
		"Show me the best options sorted by price and total travel time.")

	return userPrompt("Flight search query for the given parameters", b.String()), nil
}

func flightComparison(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	data := args["flights_data"]
	if data == "" {
		return nil, errors.New("flights_data is required")
	}
	criteria := args["criteria"]
	if criteria == "" {
		criteria = defaultCriteria
	}

	text := fmt.Sprintf("Please analyze and compare the following flight options based on %s:\n\n%s\n\n", criteria, data) +
		"Provide a detailed comparison highlighting:\n" +
		"1. Price differences and value for money\n" +
		"2. Total travel time including layovers\n" +
		"3. Convenience factors (departure times, number of stops, airports)\n" +
		"4. Airline reputation and service quality\n" +
		"5. Your recommendation with reasoning\n\n" +
		"Format the response in a clear, easy-to-read manner that helps with decision making."

	return userPrompt("Flight comparison analysis prompt", text), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}
