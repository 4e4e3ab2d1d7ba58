package flights

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

func departingAt(id, ts string) domain.Flight {
	return domain.Flight{ID: id, Departure: domain.FlightEndpoint{Time: ts}}
}

func rangeFixture() []domain.FlightSearchResult {
	return []domain.FlightSearchResult{
		{
			Direct:       []domain.Flight{departingAt("early", "2024-03-01T06:15:00"), departingAt("noon", "2024-03-01T12:00:00")},
			Connecting:   []domain.FlightConnection{{TotalDuration: 400}},
			SearchParams: domain.SearchParams{Date: "2024-03-01"},
		},
		{
			Direct:       []domain.Flight{departingAt("late", "2024-03-02T22:45:00")},
			Connecting:   []domain.FlightConnection{},
			SearchParams: domain.SearchParams{Date: "2024-03-02"},
		},
		{
			Direct:       []domain.Flight{},
			Connecting:   []domain.FlightConnection{{TotalDuration: 500}},
			SearchParams: domain.SearchParams{Date: "2024-03-03"},
		},
	}
}

func TestFilterRange_WindowKeepsConnecting(t *testing.T) {
	got := FilterRange(rangeFixture(), DepartureWindow{From: "08:00", To: "12:00"}, true)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-01", got[0].SearchParams.Date)
	require.Len(t, got[0].Direct, 1)
	assert.Equal(t, "noon", got[0].Direct[0].ID)
	assert.Len(t, got[0].Connecting, 1)
	assert.Equal(t, "2024-03-03", got[1].SearchParams.Date)
}

func TestFilterRange_WindowWithoutConnectingDropsEmptyDays(t *testing.T) {
	got := FilterRange(rangeFixture(), DepartureWindow{From: "20:00"}, false)

	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-02", got[0].SearchParams.Date)
	assert.Equal(t, "late", got[0].Direct[0].ID)
}

func TestFilterRange_NoWindow(t *testing.T) {
	all := FilterRange(rangeFixture(), DepartureWindow{}, true)
	assert.Equal(t, rangeFixture(), all)

	directOnly := FilterRange(rangeFixture(), DepartureWindow{}, false)
	require.Len(t, directOnly, 3)
	for _, r := range directOnly {
		assert.NotNil(t, r.Connecting)
		assert.Empty(t, r.Connecting)
	}
}

func TestDepartureWindow_Validate(t *testing.T) {
	assert.NoError(t, DepartureWindow{}.Validate())
	assert.NoError(t, DepartureWindow{From: "00:00", To: "23:59"}.Validate())

	err := DepartureWindow{From: "8am"}.Validate()
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Error(t, DepartureWindow{To: "25:00"}.Validate())
}

func TestDepartureClock(t *testing.T) {
	assert.Equal(t, "08:05", departureClock("2024-03-01T08:05:00"))
	assert.Equal(t, "08:05", departureClock("2024-03-01T08:05"))
	assert.Equal(t, "", departureClock("2024-03-01"))
}
