package domain

import "fmt"

const (
	UnknownCountry  = "Unknown"
	DefaultTimezone = "UTC"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Airport struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Timezone    string      `json:"timezone"`
	Coordinates Coordinates `json:"coordinates"`
}

type Airline struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo,omitempty"`
}

// PlaceholderAirport stands in for a code the reference data could not resolve.
func PlaceholderAirport(code string) Airport {
	return Airport{
		Code:     code,
		Name:     fmt.Sprintf("%s Airport", code),
		City:     code,
		Country:  UnknownCountry,
		Timezone: DefaultTimezone,
	}
}

func PlaceholderAirline(code string) Airline {
	return Airline{Code: code, Name: code, Country: UnknownCountry}
}
