package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundrex/flight-mcp-server/internal/amadeus"
	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"PT5H30M", 330},
		{"PT45M", 45},
		{"PT2H", 120},
		{"PT0H5M", 5},
		{"PT", 0},
		{"", 0},
		{"5H30M", 0},
		{"P1DT2H", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.token))
		})
	}
}

func TestFixedRate_Convert(t *testing.T) {
	rate := DefaultRate()

	assert.Equal(t, domain.Price{Amount: 20514.00, Currency: "INR"}, rate.Convert(200, "EUR"))
	assert.Equal(t, domain.Price{Amount: 12.82, Currency: "INR"}, rate.Convert(0.125, "EUR"))
	assert.Equal(t, domain.Price{Amount: 200, Currency: "USD"}, rate.Convert(200, "USD"))
	assert.Equal(t, domain.Price{Amount: 99.99, Currency: "INR"}, rate.Convert(99.99, "INR"))
}

func TestNewFixedRate(t *testing.T) {
	rate, err := NewFixedRate("EUR", "INR", 102.57)
	require.NoError(t, err)
	assert.Equal(t, "EUR", rate.From.String())
	assert.Equal(t, "INR", rate.To.String())

	_, err = NewFixedRate("EURO", "INR", 102.57)
	assert.Error(t, err)

	_, err = NewFixedRate("EUR", "INR", 0)
	assert.Error(t, err)
}

func TestAirport(t *testing.T) {
	got := Airport(amadeus.Location{
		Name:           "JOHN F KENNEDY INTL",
		IATACode:       "JFK",
		TimeZoneOffset: "-04:00",
		GeoCode:        &amadeus.GeoCode{Latitude: "40.63983", Longitude: "-73.77874"},
		Address:        &amadeus.Address{CityName: "NEW YORK", CountryName: "UNITED STATES OF AMERICA"},
	})

	assert.Equal(t, domain.Airport{
		Code:        "JFK",
		Name:        "JOHN F KENNEDY INTL",
		City:        "NEW YORK",
		Country:     "UNITED STATES OF AMERICA",
		Timezone:    "-04:00",
		Coordinates: domain.Coordinates{Latitude: 40.63983, Longitude: -73.77874},
	}, got)
}

func TestAirport_Defaults(t *testing.T) {
	got := Airport(amadeus.Location{
		Code:    "ORD",
		GeoCode: &amadeus.GeoCode{Latitude: "north", Longitude: ""},
		Address: &amadeus.Address{CityName: "CHICAGO"},
	})

	assert.Equal(t, "ORD", got.Code)
	assert.Equal(t, "CHICAGO Airport", got.Name)
	assert.Equal(t, "", got.Country)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, domain.Coordinates{}, got.Coordinates)

	bare := Airport(amadeus.Location{IATACode: "XYZ"})
	assert.Equal(t, "", bare.City)
	assert.Equal(t, domain.Coordinates{}, bare.Coordinates)
}

func TestAirline(t *testing.T) {
	assert.Equal(t,
		domain.Airline{Code: "AA", Name: "AMERICAN AIRLINES", Country: "UNITED STATES"},
		Airline(amadeus.Airline{IATACode: "AA", BusinessName: "AMERICAN AIRLINES", Address: &amadeus.Address{CountryName: "UNITED STATES"}}),
	)
	assert.Equal(t,
		domain.Airline{Code: "BA", Name: "BRITISH A/W"},
		Airline(amadeus.Airline{IATACode: "BA", CommonName: "BRITISH A/W"}),
	)
	assert.Equal(t, domain.Airline{Code: "ZZ"}, Airline(amadeus.Airline{Code: "ZZ"}))
}

func TestSplitPrice(t *testing.T) {
	assert.Equal(t, 33.33, SplitPrice(100, 3))
	assert.Equal(t, 100.0, SplitPrice(200, 2))
	assert.Equal(t, 0.0, SplitPrice(100, 0))

	for _, n := range []int{2, 3, 4, 7} {
		total := 1234.56
		sum := SplitPrice(total, n) * float64(n)
		assert.InDelta(t, total, sum, 0.01*float64(n), "n=%d", n)
	}
}

func TestLayoverMinutes(t *testing.T) {
	assert.Equal(t, 90, LayoverMinutes("2024-03-01T14:00:00", "2024-03-01T15:30:00"))
	assert.Equal(t, 60, LayoverMinutes("2024-03-01T23:30:00", "2024-03-02T00:30:59"))
	assert.Equal(t, -30, LayoverMinutes("2024-03-01T15:30:00", "2024-03-01T15:00:00"))
	assert.Equal(t, 0, LayoverMinutes("soon", "2024-03-01T15:00:00"))
}

func jfkLaxIndexes() (AirportIndex, AirlineIndex) {
	airports := AirportIndex{
		"JFK": {Code: "JFK", Name: "JOHN F KENNEDY INTL", City: "NEW YORK", Country: "US", Timezone: "UTC"},
		"LAX": {Code: "LAX", Name: "LOS ANGELES INTL", City: "LOS ANGELES", Country: "US", Timezone: "UTC"},
	}
	airlines := AirlineIndex{
		"AA": {Code: "AA", Name: "AMERICAN AIRLINES", Country: "US"},
	}
	return airports, airlines
}

func TestConverter_Flight(t *testing.T) {
	airports, airlines := jfkLaxIndexes()
	offer := amadeus.FlightOffer{
		ID: "1",
		Itineraries: []amadeus.Itinerary{{
			Duration: "PT6H15M",
			Segments: []amadeus.Segment{{
				Departure:   amadeus.Endpoint{IATACode: "JFK", Terminal: "8", At: "2024-03-01T08:00:00"},
				Arrival:     amadeus.Endpoint{IATACode: "LAX", At: "2024-03-01T11:15:00"},
				CarrierCode: "AA",
				Number:      "100",
				Aircraft:    &amadeus.Aircraft{Code: "321"},
			}},
		}},
		Price: amadeus.Price{Currency: "EUR", Total: "200.00"},
	}

	got := New(DefaultRate()).Flight(offer, airports, airlines)

	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "AA100", got.FlightNumber)
	assert.Equal(t, "AMERICAN AIRLINES", got.Airline.Name)
	assert.Equal(t, "JFK", got.Departure.Airport.Code)
	assert.Equal(t, "8", got.Departure.Terminal)
	assert.Equal(t, "2024-03-01T11:15:00", got.Arrival.Time)
	assert.Equal(t, 375, got.Duration)
	assert.Equal(t, "321", got.Aircraft)
	assert.Equal(t, domain.Price{Amount: 20514.00, Currency: "INR"}, got.Price)
}

func TestConverter_Flight_Placeholders(t *testing.T) {
	offer := amadeus.FlightOffer{
		ID: "9",
		Itineraries: []amadeus.Itinerary{{
			Duration: "bogus",
			Segments: []amadeus.Segment{{
				Departure:   amadeus.Endpoint{IATACode: "QQQ"},
				Arrival:     amadeus.Endpoint{IATACode: "WWW"},
				CarrierCode: "X9",
				Number:      "1",
			}},
		}},
		Price: amadeus.Price{Currency: "USD", Total: "not-a-number"},
	}

	got := New(nil).Flight(offer, AirportIndex{}, AirlineIndex{})

	assert.Equal(t, domain.PlaceholderAirport("QQQ"), got.Departure.Airport)
	assert.Equal(t, "Unknown", got.Departure.Airport.Country)
	assert.Equal(t, "QQQ Airport", got.Departure.Airport.Name)
	assert.Equal(t, domain.Airline{Code: "X9", Name: "X9", Country: "Unknown"}, got.Airline)
	assert.Equal(t, "Unknown", got.Aircraft)
	assert.Equal(t, 0, got.Duration)
	assert.Equal(t, domain.Price{Amount: 0, Currency: "USD"}, got.Price)
}

func TestConverter_Connection(t *testing.T) {
	airports, airlines := jfkLaxIndexes()
	offer := amadeus.FlightOffer{
		ID: "7",
		Itineraries: []amadeus.Itinerary{{
			Duration: "PT8H30M",
			Segments: []amadeus.Segment{
				{
					Departure:   amadeus.Endpoint{IATACode: "JFK", At: "2024-03-01T11:00:00"},
					Arrival:     amadeus.Endpoint{IATACode: "ORD", At: "2024-03-01T14:00:00"},
					CarrierCode: "AA",
					Number:      "10",
					Duration:    "PT3H",
				},
				{
					Departure:   amadeus.Endpoint{IATACode: "ORD", At: "2024-03-01T15:30:00"},
					Arrival:     amadeus.Endpoint{IATACode: "LAX", At: "2024-03-01T19:30:00"},
					CarrierCode: "UA",
					Number:      "20",
				},
			},
		}},
		Price: amadeus.Price{Currency: "EUR", Total: "310.00"},
	}

	got := New(DefaultRate()).Connection(offer, airports, airlines)

	require.Len(t, got.Flights, 2)
	require.Len(t, got.Layovers, 1)

	assert.Equal(t, "7-0", got.Flights[0].ID)
	assert.Equal(t, "7-1", got.Flights[1].ID)
	assert.Equal(t, 180, got.Flights[0].Duration)
	assert.Equal(t, 120, got.Flights[1].Duration, "missing segment duration defaults to two hours")
	assert.Equal(t, domain.PlaceholderAirline("UA"), got.Flights[1].Airline)

	assert.Equal(t, domain.Price{Amount: 15898.35, Currency: "INR"}, got.Flights[0].Price)
	assert.Equal(t, domain.Price{Amount: 31796.70, Currency: "INR"}, got.TotalPrice)

	assert.Equal(t, 90, got.Layovers[0].Duration)
	assert.Equal(t, domain.PlaceholderAirport("ORD"), got.Layovers[0].Airport)
	assert.Equal(t, 510, got.TotalDuration)
}

func TestConverter_Connection_LegPricesSumToTotal(t *testing.T) {
	segments := make([]amadeus.Segment, 3)
	for i := range segments {
		segments[i] = amadeus.Segment{
			Departure: amadeus.Endpoint{IATACode: "AAA", At: "2024-03-01T10:00:00"},
			Arrival:   amadeus.Endpoint{IATACode: "BBB", At: "2024-03-01T11:00:00"},
		}
	}
	offer := amadeus.FlightOffer{
		ID:          "3",
		Itineraries: []amadeus.Itinerary{{Duration: "PT5H", Segments: segments}},
		Price:       amadeus.Price{Currency: "USD", Total: "100.00"},
	}

	got := New(DefaultRate()).Connection(offer, AirportIndex{}, AirlineIndex{})

	var sum float64
	for _, f := range got.Flights {
		assert.Equal(t, 33.33, f.Price.Amount)
		sum += f.Price.Amount
	}
	assert.InDelta(t, 100.0, sum, 0.03)
	assert.Len(t, got.Layovers, 2)
}
