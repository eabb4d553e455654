// Package geo maps free-text Bengali location names to coordinates.
package geo

import (
	"strings"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
)

// DefaultCoordinates is the fallback when no known city matches (central
// Bangladesh, near Dhaka).
var DefaultCoordinates = domain.Coordinates{Latitude: 23.6850, Longitude: 90.3563}

type city struct {
	name   string
	coords domain.Coordinates
}

// knownCities is a best-effort lookup table of major divisional cities.
// Matching is by containment in definition order; the first hit wins, so
// callers must not assume longest-match semantics.
var knownCities = []city{
	{"ঢাকা", domain.Coordinates{Latitude: 23.8103, Longitude: 90.4125}},
	{"চট্টগ্রাম", domain.Coordinates{Latitude: 22.3569, Longitude: 91.7832}},
	{"সিলেট", domain.Coordinates{Latitude: 24.8949, Longitude: 91.8687}},
	{"রাজশাহী", domain.Coordinates{Latitude: 24.3745, Longitude: 88.6042}},
	{"খুলনা", domain.Coordinates{Latitude: 22.8456, Longitude: 89.5403}},
	{"বরিশাল", domain.Coordinates{Latitude: 22.7010, Longitude: 90.3535}},
	{"রংপুর", domain.Coordinates{Latitude: 25.7439, Longitude: 89.2752}},
	{"ময়মনসিংহ", domain.Coordinates{Latitude: 24.7471, Longitude: 90.4203}},
}

// Resolve maps a location name to coordinates. It is a total function:
// unresolved names yield DefaultCoordinates.
func Resolve(location string) domain.Coordinates {
	for _, c := range knownCities {
		if strings.Contains(location, c.name) {
			return c.coords
		}
	}
	return DefaultCoordinates
}
