package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/mukundrex/flight-mcp-server/internal/amadeus"
	"github.com/mukundrex/flight-mcp-server/internal/converter"
	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/kafka"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
	"github.com/mukundrex/flight-mcp-server/internal/telemetry"
)

const (
	dateLayout        = "2006-01-02"
	defaultMaxResults = 10
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) (*domain.FlightSearchResult, error)
	SearchRange(ctx context.Context, input RangeInput) ([]domain.FlightSearchResult, error)
}

// References resolves airports and airlines, usually through the reference cache.
type References interface {
	Airport(ctx context.Context, code string) (domain.Airport, bool)
	Airline(ctx context.Context, code string) (domain.Airline, bool)
}

type OfferSearcher interface {
	SearchOffers(ctx context.Context, q amadeus.OfferQuery) ([]amadeus.FlightOffer, error)
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SearchInput struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Adults      int    `json:"adults"`
}

type RangeInput struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Adults      int    `json:"adults"`
}

type FlightService struct {
	references       References
	offers           OfferSearcher
	converter        *converter.Converter
	producer         EventProducer
	eventsTopic      string
	maxResults       int
	defaultAdults    int
	rangeConcurrency int
	metrics          *metrics.Registry
}

type FlightServiceOption func(*FlightService)

func WithEvents(producer EventProducer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithMaxResults(n int) FlightServiceOption {
	return func(s *FlightService) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

func WithDefaultAdults(n int) FlightServiceOption {
	return func(s *FlightService) {
		if n > 0 {
			s.defaultAdults = n
		}
	}
}

// WithRangeConcurrency sets how many days a range search runs at once.
func WithRangeConcurrency(n int) FlightServiceOption {
	return func(s *FlightService) {
		if n > 0 {
			s.rangeConcurrency = n
		}
	}
}

func WithMetrics(m *metrics.Registry) FlightServiceOption {
	return func(s *FlightService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewFlightService(references References, offers OfferSearcher, conv *converter.Converter, opts ...FlightServiceOption) *FlightService {
	if conv == nil {
		conv = converter.New(converter.DefaultRate())
	}
	service := &FlightService{
		references:       references,
		offers:           offers,
		converter:        conv,
		maxResults:       defaultMaxResults,
		defaultAdults:    1,
		rangeConcurrency: 1,
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.metrics == nil {
		service.metrics = metrics.Nop()
	}
	return service
}

// Search runs one vendor search for a single day and splits the offers into
// direct flights and connections. Unknown airports fail with ErrNotFound
// before the vendor is called.
func (s *FlightService) Search(ctx context.Context, input SearchInput) (*domain.FlightSearchResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "flights.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("flight.origin", input.Origin),
		attribute.String("flight.destination", input.Destination),
		attribute.String("flight.date", input.Date),
	)

	input.Adults = s.adults(input.Adults)
	result, err := s.search(ctx, input)

	event := kafka.NewSearchEvent(kafka.EventSearch, input.Origin, input.Destination, input.Adults)
	event.Date = input.Date
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		event.Fail(err)
	} else {
		event.DirectCount = len(result.Direct)
		event.ConnectingCount = len(result.Connecting)
	}
	s.metrics.SearchesTotal.WithLabelValues("single", event.Outcome).Inc()
	s.publish(ctx, event)

	return result, err
}

func (s *FlightService) search(ctx context.Context, input SearchInput) (*domain.FlightSearchResult, error) {
	if err := validateRoute(input.Origin, input.Destination); err != nil {
		return nil, err
	}
	if _, err := parseDate(input.Date); err != nil {
		return nil, err
	}

	var (
		g                       errgroup.Group
		origin, destination     domain.Airport
		originOK, destinationOK bool
	)
	g.Go(func() error {
		origin, originOK = s.references.Airport(ctx, input.Origin)
		return nil
	})
	g.Go(func() error {
		destination, destinationOK = s.references.Airport(ctx, input.Destination)
		return nil
	})
	_ = g.Wait()

	if !originOK {
		return nil, &domain.NotFoundError{Kind: "Origin airport", Code: input.Origin}
	}
	if !destinationOK {
		return nil, &domain.NotFoundError{Kind: "Destination airport", Code: input.Destination}
	}

	offers, err := s.offers.SearchOffers(ctx, amadeus.OfferQuery{
		Origin:        input.Origin,
		Destination:   input.Destination,
		DepartureDate: input.Date,
		Adults:        input.Adults,
		Max:           s.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search offers %s-%s on %s: %w", domain.ErrUpstream, input.Origin, input.Destination, input.Date, err)
	}

	airports := converter.AirportIndex{
		input.Origin:      origin,
		input.Destination: destination,
	}

	airlines := converter.AirlineIndex{}
	for _, code := range carrierCodes(offers) {
		if airline, ok := s.references.Airline(ctx, code); ok {
			airlines[code] = airline
		}
	}

	result := &domain.FlightSearchResult{
		Direct:     []domain.Flight{},
		Connecting: []domain.FlightConnection{},
		SearchParams: domain.SearchParams{
			From:       input.Origin,
			To:         input.Destination,
			Date:       input.Date,
			Passengers: input.Adults,
		},
	}

	for _, offer := range offers {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			logging.Warn("skipping offer without segments", "offer_id", offer.ID)
			continue
		}
		if len(offer.Itineraries[0].Segments) == 1 {
			result.Direct = append(result.Direct, s.converter.Flight(offer, airports, airlines))
		} else {
			result.Connecting = append(result.Connecting, s.converter.Connection(offer, airports, airlines))
		}
	}

	return result, nil
}

// SearchRange searches every day from StartDate to EndDate inclusive and keeps
// the days that returned at least one flight, in date order. A failed day is
// logged and skipped.
func (s *FlightService) SearchRange(ctx context.Context, input RangeInput) ([]domain.FlightSearchResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "flights.SearchRange")
	defer span.End()
	span.SetAttributes(
		attribute.String("flight.origin", input.Origin),
		attribute.String("flight.destination", input.Destination),
		attribute.String("flight.start_date", input.StartDate),
		attribute.String("flight.end_date", input.EndDate),
	)

	input.Adults = s.adults(input.Adults)
	results, err := s.searchRange(ctx, input)

	event := kafka.NewSearchEvent(kafka.EventRangeSearch, input.Origin, input.Destination, input.Adults)
	event.StartDate, event.EndDate = input.StartDate, input.EndDate
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		event.Fail(err)
	} else {
		event.Days = len(results)
		for _, r := range results {
			event.DirectCount += len(r.Direct)
			event.ConnectingCount += len(r.Connecting)
		}
	}
	s.metrics.SearchesTotal.WithLabelValues("range", event.Outcome).Inc()
	s.publish(ctx, event)

	return results, err
}

func (s *FlightService) searchRange(ctx context.Context, input RangeInput) ([]domain.FlightSearchResult, error) {
	if err := validateRoute(input.Origin, input.Destination); err != nil {
		return nil, err
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	days := daysBetween(start, end)
	perDay := make([]*domain.FlightSearchResult, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rangeConcurrency)
	for i, day := range days {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			date := day.Format(dateLayout)
			result, err := s.search(gctx, SearchInput{
				Origin:      input.Origin,
				Destination: input.Destination,
				Date:        date,
				Adults:      input.Adults,
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn("range search day failed", "date", date, "origin", input.Origin, "destination", input.Destination, "error", err)
				s.metrics.RangeDaysSkipped.Inc()
				return nil
			}
			perDay[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]domain.FlightSearchResult, 0, len(days))
	for _, r := range perDay {
		if r != nil && !r.Empty() {
			results = append(results, *r)
		}
	}
	return results, nil
}

func (s *FlightService) adults(n int) int {
	if n <= 0 {
		return s.defaultAdults
	}
	return n
}

func (s *FlightService) publish(ctx context.Context, event kafka.SearchEvent) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	if err := s.producer.Publish(context.WithoutCancel(ctx), s.eventsTopic, event.ID, event); err != nil {
		logging.Warn("publish search event failed", "event_id", event.ID, "error", err)
	}
}

// carrierCodes lists distinct carrier codes across all segments of all
// itineraries, in first-seen order.
func carrierCodes(offers []amadeus.FlightOffer) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, offer := range offers {
		for _, itinerary := range offer.Itineraries {
			for _, segment := range itinerary.Segments {
				if segment.CarrierCode == "" {
					continue
				}
				if _, ok := seen[segment.CarrierCode]; ok {
					continue
				}
				seen[segment.CarrierCode] = struct{}{}
				out = append(out, segment.CarrierCode)
			}
		}
	}
	return out
}

func validateRoute(origin, destination string) error {
	if strings.TrimSpace(origin) == "" {
		return fmt.Errorf("%w: origin code is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(destination) == "" {
		return fmt.Errorf("%w: destination code is required", domain.ErrInvalidArgument)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidArgument, s)
	}
	return t, nil
}

// daysBetween lists calendar days from start to end inclusive; empty when end
// precedes start.
func daysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

var _ FlightUseCase = (*FlightService)(nil)
