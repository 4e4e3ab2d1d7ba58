// Package referencedata serves the static airport and airline catalog behind
// the airport:// and airline:// resources.
package referencedata

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
)

//go:embed airports.csv
var airportsCSV string

var defaultAirlines = []domain.Airline{
	{Code: "AA", Name: "American Airlines", Country: "United States"},
	{Code: "BA", Name: "British Airways", Country: "United Kingdom"},
	{Code: "AF", Name: "Air France", Country: "France"},
	{Code: "LH", Name: "Lufthansa", Country: "Germany"},
	{Code: "JL", Name: "Japan Airlines", Country: "Japan"},
	{Code: "SQ", Name: "Singapore Airlines", Country: "Singapore"},
	{Code: "EK", Name: "Emirates", Country: "United Arab Emirates"},
	{Code: "QF", Name: "Qantas", Country: "Australia"},
	{Code: "AC", Name: "Air Canada", Country: "Canada"},
	{Code: "DL", Name: "Delta Air Lines", Country: "United States"},
}

// fallbackAirports is used when the embedded CSV cannot be parsed.
var fallbackAirports = []domain.Airport{
	{
		Code:        "JFK",
		Name:        "John F. Kennedy International Airport",
		City:        "New York",
		Country:     "United States",
		Timezone:    "America/New_York",
		Coordinates: domain.Coordinates{Latitude: 40.6413, Longitude: -73.7781},
	},
	{
		Code:        "LAX",
		Name:        "Los Angeles International Airport",
		City:        "Los Angeles",
		Country:     "United States",
		Timezone:    "America/Los_Angeles",
		Coordinates: domain.Coordinates{Latitude: 34.0522, Longitude: -118.2437},
	},
}

type Catalog struct {
	airports []domain.Airport
	byCode   map[string]domain.Airport
	airlines []domain.Airline
}

// Load builds the catalog from the embedded CSV.
func Load() *Catalog {
	airports, err := ParseAirports(strings.NewReader(airportsCSV))
	if err != nil || len(airports) == 0 {
		logging.Error("load embedded airports, using fallback", "error", err)
		airports = fallbackAirports
	}
	return New(airports, defaultAirlines)
}

func New(airports []domain.Airport, airlines []domain.Airline) *Catalog {
	byCode := make(map[string]domain.Airport, len(airports))
	for _, a := range airports {
		key := strings.ToUpper(a.Code)
		if _, dup := byCode[key]; !dup {
			byCode[key] = a
		}
	}
	return &Catalog{airports: airports, byCode: byCode, airlines: airlines}
}

// ParseAirports reads code,city rows after a header line. Rows without a
// city are skipped.
func ParseAirports(r io.Reader) ([]domain.Airport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Airport{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	airports := []domain.Airport{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read airports: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		code := strings.TrimSpace(record[0])
		city := strings.TrimSpace(strings.Join(record[1:], ","))
		if code == "" || city == "" {
			continue
		}

		airports = append(airports, domain.Airport{
			Code:     code,
			Name:     city + " Airport",
			City:     city,
			Country:  domain.UnknownCountry,
			Timezone: domain.DefaultTimezone,
		})
	}
	return airports, nil
}

func (c *Catalog) Airports() []domain.Airport {
	return c.airports
}

// Airport looks a code up case-insensitively.
func (c *Catalog) Airport(code string) (domain.Airport, bool) {
	a, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

func (c *Catalog) Airlines() []domain.Airline {
	return c.airlines
}
