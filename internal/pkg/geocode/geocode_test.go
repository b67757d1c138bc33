package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsCaseAndWhitespaceTolerant(t *testing.T) {
	g := NewStaticGeocoder()

	for _, input := range []string{"Haifa", "haifa", "HAIFA", "  haifa  "} {
		coords, ok := g.Lookup(input)
		require.True(t, ok, "expected a hit for %q", input)
		assert.InDelta(t, 32.7940, coords.Latitude, 1e-4)
		assert.InDelta(t, 34.9896, coords.Longitude, 1e-4)
	}
}

func TestLookupMissIsNotAnError(t *testing.T) {
	g := NewStaticGeocoder()

	coords, ok := g.Lookup("Springfield")
	assert.False(t, ok)
	assert.Nil(t, coords)

	coords, ok = g.Lookup("")
	assert.False(t, ok)
	assert.Nil(t, coords)
}

func TestLookupReturnsACopy(t *testing.T) {
	g := NewStaticGeocoder()

	first, ok := g.Lookup("haifa")
	require.True(t, ok)
	first.Latitude = 0

	second, _ := g.Lookup("haifa")
	assert.InDelta(t, 32.7940, second.Latitude, 1e-4)
}
