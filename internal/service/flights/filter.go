package flights

import (
	"fmt"
	"strings"
	"time"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

// DepartureWindow bounds the local departure clock time of direct flights.
// Both ends are HH:MM and inclusive; an empty end is open.
type DepartureWindow struct {
	From string
	To   string
}

func (w DepartureWindow) Active() bool {
	return w.From != "" || w.To != ""
}

func (w DepartureWindow) Validate() error {
	for _, v := range []string{w.From, w.To} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("%w: time %q must be HH:MM", domain.ErrInvalidArgument, v)
		}
	}
	return nil
}

func (w DepartureWindow) contains(departure string) bool {
	clock := departureClock(departure)
	if w.From != "" && clock < w.From {
		return false
	}
	if w.To != "" && clock > w.To {
		return false
	}
	return true
}

// FilterRange applies the departure window and the connecting-flights switch
// to range results. With an active window, days left without flights are dropped.
func FilterRange(results []domain.FlightSearchResult, window DepartureWindow, includeConnecting bool) []domain.FlightSearchResult {
	out := make([]domain.FlightSearchResult, 0, len(results))
	for _, r := range results {
		if window.Active() {
			direct := make([]domain.Flight, 0, len(r.Direct))
			for _, f := range r.Direct {
				if window.contains(f.Departure.Time) {
					direct = append(direct, f)
				}
			}
			r.Direct = direct
			if !includeConnecting {
				r.Connecting = []domain.FlightConnection{}
			}
			if r.Empty() {
				continue
			}
		}
		if !includeConnecting {
			r.Connecting = []domain.FlightConnection{}
		}
		out = append(out, r)
	}
	return out
}

// departureClock extracts HH:MM from a timestamp like 2024-03-01T08:05:00.
func departureClock(ts string) string {
	_, clock, ok := strings.Cut(ts, "T")
	if !ok {
		return ""
	}
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return clock
}
