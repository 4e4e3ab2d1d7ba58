package reference

import (
	"context"

	"github.com/mukundrex/flight-mcp-server/internal/amadeus"
	"github.com/mukundrex/flight-mcp-server/internal/cache"
	"github.com/mukundrex/flight-mcp-server/internal/converter"
	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
)

const (
	subTypeAirport     = "AIRPORT"
	subTypeAirportCity = "AIRPORT,CITY"
)

// Lookup is the slice of the Amadeus client used for reference data.
type Lookup interface {
	FindLocations(ctx context.Context, keyword, subType string) ([]amadeus.Location, error)
	FindAirlines(ctx context.Context, codes ...string) ([]amadeus.Airline, error)
}

type ReferenceUseCase interface {
	Airport(ctx context.Context, code string) (domain.Airport, bool)
	Airline(ctx context.Context, code string) (domain.Airline, bool)
	SearchAirports(ctx context.Context, keyword string) []domain.Airport
}

type ReferenceService struct {
	lookup   Lookup
	airports *cache.Reference[domain.Airport]
	airlines *cache.Reference[domain.Airline]
}

func NewReferenceService(lookup Lookup, m *metrics.Registry) *ReferenceService {
	return &ReferenceService{
		lookup:   lookup,
		airports: cache.NewReference[domain.Airport]("airport", m),
		airlines: cache.NewReference[domain.Airline]("airline", m),
	}
}

// Airport resolves an airport by code through the cache. Lookup errors are
// logged and reported as absent.
func (s *ReferenceService) Airport(ctx context.Context, code string) (domain.Airport, bool) {
	airport, ok, err := s.airports.Resolve(ctx, code, s.loadAirport)
	if err != nil {
		logging.Error("airport lookup failed", "code", code, "error", err)
	}
	return airport, ok
}

func (s *ReferenceService) Airline(ctx context.Context, code string) (domain.Airline, bool) {
	airline, ok, err := s.airlines.Resolve(ctx, code, s.loadAirline)
	if err != nil {
		logging.Error("airline lookup failed", "code", code, "error", err)
	}
	return airline, ok
}

// SearchAirports matches airports and cities by keyword. It bypasses the cache
// and returns an empty slice on failure.
func (s *ReferenceService) SearchAirports(ctx context.Context, keyword string) []domain.Airport {
	locations, err := s.lookup.FindLocations(ctx, keyword, subTypeAirportCity)
	if err != nil {
		logging.Error("airport search failed", "keyword", keyword, "error", err)
		return []domain.Airport{}
	}

	airports := make([]domain.Airport, 0, len(locations))
	for _, loc := range locations {
		airports = append(airports, converter.Airport(loc))
	}
	return airports
}

func (s *ReferenceService) loadAirport(ctx context.Context, code string) (domain.Airport, bool, error) {
	locations, err := s.lookup.FindLocations(ctx, code, subTypeAirport)
	if err != nil || len(locations) == 0 {
		return domain.Airport{}, false, err
	}
	return converter.Airport(locations[0]), true, nil
}

func (s *ReferenceService) loadAirline(ctx context.Context, code string) (domain.Airline, bool, error) {
	airlines, err := s.lookup.FindAirlines(ctx, code)
	if err != nil || len(airlines) == 0 {
		return domain.Airline{}, false, err
	}
	return converter.Airline(airlines[0]), true, nil
}

var _ ReferenceUseCase = (*ReferenceService)(nil)
