package types

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Coords is a WGS84 position in decimal degrees. Values outside the usual
// ranges are kept as given; OnGlobe reports whether they are plausible.
type Coords struct {
	Latitude  float64
	Longitude float64
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{Latitude: latitude, Longitude: longitude}
}

// OnGlobe reports whether the position lies within -90..90 and -180..180
func (c Coords) OnGlobe() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Point returns the position in GeoJSON (longitude, latitude) order
func (c Coords) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// String is used as a log attribute and a map key in tests
func (c Coords) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Latitude, c.Longitude)
}
