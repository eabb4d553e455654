package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Redoy0/political-violence-monitor/internal/geo"
)

func TestResolve_KnownCity(t *testing.T) {
	got := geo.Resolve("ঢাকা")
	assert.InDelta(t, 23.8103, got.Latitude, 0.001)
	assert.InDelta(t, 90.4125, got.Longitude, 0.001)
}

func TestResolve_CityNameEmbeddedInPhrase(t *testing.T) {
	got := geo.Resolve("চট্টগ্রাম শহরের পাহাড়তলী এলাকা")
	assert.InDelta(t, 22.3569, got.Latitude, 0.001)
}

func TestResolve_UnknownLocationGetsDefault(t *testing.T) {
	got := geo.Resolve("কোনো অজানা গ্রাম")
	assert.Equal(t, geo.DefaultCoordinates, got)
}

func TestResolve_EmptyLocationGetsDefault(t *testing.T) {
	assert.Equal(t, geo.DefaultCoordinates, geo.Resolve(""))
}
