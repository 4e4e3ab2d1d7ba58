package amadeus

import (
	"bytes"
	"strings"
)

// Coordinate keeps the raw geo value. Amadeus sends numbers, some mirrors send
// strings; parsing is left to the converter.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	*c = Coordinate(strings.Trim(string(data), `"`))
	return nil
}

type GeoCode struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode,omitempty"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Location is a reference-data record from /v1/reference-data/locations.
type Location struct {
	Type           string   `json:"type,omitempty"`
	SubType        string   `json:"subType,omitempty"`
	Name           string   `json:"name"`
	DetailedName   string   `json:"detailedName,omitempty"`
	IATACode       string   `json:"iataCode"`
	Code           string   `json:"code,omitempty"`
	City           string   `json:"city,omitempty"`
	Country        string   `json:"country,omitempty"`
	TimeZoneOffset string   `json:"timeZoneOffset,omitempty"`
	GeoCode        *GeoCode `json:"geoCode,omitempty"`
	Address        *Address `json:"address,omitempty"`
}

type Airline struct {
	Type         string   `json:"type,omitempty"`
	IATACode     string   `json:"iataCode"`
	ICAOCode     string   `json:"icaoCode,omitempty"`
	Code         string   `json:"code,omitempty"`
	BusinessName string   `json:"businessName"`
	CommonName   string   `json:"commonName,omitempty"`
	Name         string   `json:"name,omitempty"`
	Address      *Address `json:"address,omitempty"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type Segment struct {
	ID            string    `json:"id,omitempty"`
	Departure     Endpoint  `json:"departure"`
	Arrival       Endpoint  `json:"arrival"`
	CarrierCode   string    `json:"carrierCode"`
	Number        string    `json:"number"`
	Aircraft      *Aircraft `json:"aircraft,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	NumberOfStops int       `json:"numberOfStops,omitempty"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Price carries the total as the decimal string Amadeus returns.
type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

type FlightOffer struct {
	Type                   string      `json:"type,omitempty"`
	ID                     string      `json:"id"`
	Source                 string      `json:"source,omitempty"`
	OneWay                 bool        `json:"oneWay,omitempty"`
	NumberOfBookableSeats  int         `json:"numberOfBookableSeats,omitempty"`
	Itineraries            []Itinerary `json:"itineraries"`
	Price                  Price       `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes,omitempty"`
}

// OfferQuery is the subset of flight-offers search parameters the server uses.
type OfferQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
	Max           int
}
