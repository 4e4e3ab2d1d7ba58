package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

const (
	EventSearch      = "flight_search"
	EventRangeSearch = "flight_range_search"

	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid_argument"
	OutcomeUpstream = "upstream_error"
	OutcomeCanceled = "canceled"
	OutcomeInternal = "error"
)

// SearchEvent is the audit record published after every search.
type SearchEvent struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Date            string    `json:"date,omitempty"`
	StartDate       string    `json:"start_date,omitempty"`
	EndDate         string    `json:"end_date,omitempty"`
	Adults          int       `json:"adults"`
	DirectCount     int       `json:"direct_count"`
	ConnectingCount int       `json:"connecting_count"`
	Days            int       `json:"days,omitempty"`
	Outcome         string    `json:"outcome"`
	Error           string    `json:"error,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewSearchEvent(eventType, origin, destination string, adults int) SearchEvent {
	return SearchEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Origin:      origin,
		Destination: destination,
		Adults:      adults,
		Outcome:     OutcomeOK,
		OccurredAt:  time.Now().UTC(),
	}
}

// Fail records err on the event and classifies it.
func (e *SearchEvent) Fail(err error) {
	e.Error = err.Error()
	e.Outcome = Outcome(err)
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrUpstream):
		return OutcomeUpstream
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeInternal
	}
}

func DecodeSearchEvent(data []byte) (SearchEvent, error) {
	var event SearchEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return SearchEvent{}, fmt.Errorf("decode search event: %w", err)
	}
	if event.ID == "" {
		return SearchEvent{}, fmt.Errorf("decode search event: missing id")
	}
	return event, nil
}
