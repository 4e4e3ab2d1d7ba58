package converter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/mukundrex/flight-mcp-server/internal/amadeus"
	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

const (
	UnknownAircraft        = "Unknown"
	defaultSegmentDuration = "PT2H"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// vendor timestamps are local wall time without an offset
var timestampLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339}

type (
	AirportIndex map[string]domain.Airport
	AirlineIndex map[string]domain.Airline
)

func (idx AirportIndex) lookup(code string) domain.Airport {
	if a, ok := idx[code]; ok {
		return a
	}
	return domain.PlaceholderAirport(code)
}

func (idx AirlineIndex) lookup(code string) domain.Airline {
	if a, ok := idx[code]; ok {
		return a
	}
	return domain.PlaceholderAirline(code)
}

func Airport(loc amadeus.Location) domain.Airport {
	code := loc.IATACode
	if code == "" {
		code = loc.Code
	}

	var city, country string
	if loc.Address != nil {
		city, country = loc.Address.CityName, loc.Address.CountryName
	}
	if city == "" {
		city = loc.City
	}
	if country == "" {
		country = loc.Country
	}

	name := loc.Name
	if name == "" {
		name = fmt.Sprintf("%s Airport", city)
	}

	tz := loc.TimeZoneOffset
	if tz == "" {
		tz = domain.DefaultTimezone
	}

	var coords domain.Coordinates
	if loc.GeoCode != nil {
		coords.Latitude = parseCoordinate(loc.GeoCode.Latitude)
		coords.Longitude = parseCoordinate(loc.GeoCode.Longitude)
	}

	return domain.Airport{
		Code:        code,
		Name:        name,
		City:        city,
		Country:     country,
		Timezone:    tz,
		Coordinates: coords,
	}
}

func Airline(a amadeus.Airline) domain.Airline {
	code := a.IATACode
	if code == "" {
		code = a.Code
	}

	name := a.BusinessName
	if name == "" {
		name = a.CommonName
	}
	if name == "" {
		name = a.Name
	}

	var country string
	if a.Address != nil {
		country = a.Address.CountryName
	}

	return domain.Airline{Code: code, Name: name, Country: country}
}

// ParseDuration turns PT{h}H{m}M into whole minutes. Either part may be
// missing; a token that does not start with PT yields 0.
func ParseDuration(token string) int {
	m := durationPattern.FindStringSubmatch(token)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

func parseCoordinate(c amadeus.Coordinate) float64 {
	v, err := strconv.ParseFloat(string(c), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// SplitPrice divides total evenly over n legs, truncating each share to cents.
func SplitPrice(total float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return truncCents(total / float64(n))
}

// LayoverMinutes is the floor of the minutes between an arrival and the next
// departure. It goes negative when the vendor schedule does; unparsable
// timestamps count as 0.
func LayoverMinutes(arrival, departure string) int {
	arr, ok := parseTimestamp(arrival)
	if !ok {
		return 0
	}
	dep, ok := parseTimestamp(departure)
	if !ok {
		return 0
	}
	return int(math.Floor(dep.Sub(arr).Minutes()))
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Converter maps flight offers into domain flights using a RateProvider for prices.
type Converter struct {
	rates RateProvider
}

func New(rates RateProvider) *Converter {
	if rates == nil {
		rates = PassThrough{}
	}
	return &Converter{rates: rates}
}

// Flight converts the first segment of the offer's first itinerary. Callers
// check that the offer has at least one segment.
func (c *Converter) Flight(offer amadeus.FlightOffer, airports AirportIndex, airlines AirlineIndex) domain.Flight {
	itinerary := offer.Itineraries[0]
	segment := itinerary.Segments[0]

	aircraft := UnknownAircraft
	if segment.Aircraft != nil && segment.Aircraft.Code != "" {
		aircraft = segment.Aircraft.Code
	}

	return domain.Flight{
		ID:           offer.ID,
		Airline:      airlines.lookup(segment.CarrierCode),
		FlightNumber: segment.CarrierCode + segment.Number,
		Departure: domain.FlightEndpoint{
			Airport:  airports.lookup(segment.Departure.IATACode),
			Time:     segment.Departure.At,
			Terminal: segment.Departure.Terminal,
		},
		Arrival: domain.FlightEndpoint{
			Airport:  airports.lookup(segment.Arrival.IATACode),
			Time:     segment.Arrival.At,
			Terminal: segment.Arrival.Terminal,
		},
		Duration: ParseDuration(itinerary.Duration),
		Aircraft: aircraft,
		Price:    c.rates.Convert(parseAmount(offer.Price.Total), offer.Price.Currency),
	}
}

// Connection rebuilds a multi-segment itinerary as one leg per segment plus
// the layovers between them.
func (c *Converter) Connection(offer amadeus.FlightOffer, airports AirportIndex, airlines AirlineIndex) domain.FlightConnection {
	itinerary := offer.Itineraries[0]
	segments := itinerary.Segments
	legPrice := SplitPrice(parseAmount(offer.Price.Total), len(segments))

	flights := make([]domain.Flight, 0, len(segments))
	for i, segment := range segments {
		duration := segment.Duration
		if duration == "" {
			duration = defaultSegmentDuration
		}
		leg := amadeus.FlightOffer{
			ID:          fmt.Sprintf("%s-%d", offer.ID, i),
			Itineraries: []amadeus.Itinerary{{Duration: duration, Segments: []amadeus.Segment{segment}}},
			Price: amadeus.Price{
				Currency: offer.Price.Currency,
				Total:    strconv.FormatFloat(legPrice, 'f', 2, 64),
			},
		}
		flights = append(flights, c.Flight(leg, airports, airlines))
	}

	layovers := make([]domain.Layover, 0, len(segments))
	for i := 0; i+1 < len(segments); i++ {
		layovers = append(layovers, domain.Layover{
			Airport:  airports.lookup(segments[i].Arrival.IATACode),
			Duration: LayoverMinutes(segments[i].Arrival.At, segments[i+1].Departure.At),
		})
	}

	return domain.FlightConnection{
		Flights:       flights,
		TotalDuration: ParseDuration(itinerary.Duration),
		TotalPrice:    c.rates.Convert(parseAmount(offer.Price.Total), offer.Price.Currency),
		Layovers:      layovers,
	}
}
