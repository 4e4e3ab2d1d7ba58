package referencedata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

func TestParseAirports(t *testing.T) {
	input := "code,city\nJFK,New York\nXXX,\n\nSAO,\"Sao Paulo, Brazil\"\nORD ,  Chicago\n"

	airports, err := ParseAirports(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, airports, 3)
	assert.Equal(t, domain.Airport{
		Code:     "JFK",
		Name:     "New York Airport",
		City:     "New York",
		Country:  "Unknown",
		Timezone: "UTC",
	}, airports[0])
	assert.Equal(t, "Sao Paulo, Brazil", airports[1].City)
	assert.Equal(t, "ORD", airports[2].Code)
	assert.Equal(t, "Chicago Airport", airports[2].Name)
}

func TestParseAirports_Empty(t *testing.T) {
	airports, err := ParseAirports(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, airports)
}

func TestLoad_EmbeddedCatalog(t *testing.T) {
	catalog := Load()

	assert.NotEmpty(t, catalog.Airports())
	assert.Len(t, catalog.Airlines(), 10)
	assert.Equal(t, "AA", catalog.Airlines()[0].Code)
	assert.Equal(t, "DL", catalog.Airlines()[9].Code)

	jfk, ok := catalog.Airport("jfk")
	require.True(t, ok)
	assert.Equal(t, "New York", jfk.City)

	_, ok = catalog.Airport("ZZZ")
	assert.False(t, ok)
}
