package domain

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type FlightEndpoint struct {
	Airport  Airport `json:"airport"`
	Time     string  `json:"time"`
	Terminal string  `json:"terminal,omitempty"`
	Gate     string  `json:"gate,omitempty"`
}

// Flight is a single non-stop leg. Duration is in whole minutes.
type Flight struct {
	ID           string         `json:"id"`
	Airline      Airline        `json:"airline"`
	FlightNumber string         `json:"flightNumber"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Duration     int            `json:"duration"`
	Aircraft     string         `json:"aircraft"`
	Price        Price          `json:"price"`
}

type Layover struct {
	Airport  Airport `json:"airport"`
	Duration int     `json:"duration"`
}

// FlightConnection holds N legs and N-1 layovers, in travel order.
type FlightConnection struct {
	Flights       []Flight  `json:"flights"`
	TotalDuration int       `json:"totalDuration"`
	TotalPrice    Price     `json:"totalPrice"`
	Layovers      []Layover `json:"layovers"`
}

type SearchParams struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	ReturnDate string `json:"returnDate,omitempty"`
	Passengers int    `json:"passengers"`
}

type FlightSearchResult struct {
	Direct       []Flight           `json:"direct"`
	Connecting   []FlightConnection `json:"connecting"`
	SearchParams SearchParams       `json:"searchParams"`
}

// Empty reports whether the search produced no flights at all.
func (r FlightSearchResult) Empty() bool {
	return len(r.Direct) == 0 && len(r.Connecting) == 0
}
