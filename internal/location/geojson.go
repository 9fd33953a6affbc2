package location

import (
	"github.com/paulmach/orb/geojson"

	"weather-dashboard/internal/types"
)

// ToFeatureCollection renders locations as GeoJSON points for the dashboard map
func ToFeatureCollection(locations []types.Location) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, loc := range locations {
		f := geojson.NewFeature(loc.Coords().Point())
		f.ID = loc.ID
		f.Properties["id"] = loc.ID
		f.Properties["name"] = loc.Name
		if loc.Country != nil {
			f.Properties["country"] = *loc.Country
		}
		if loc.Population != nil {
			f.Properties["population"] = *loc.Population
		}
		if loc.CapitalType != nil {
			f.Properties["capitalType"] = *loc.CapitalType
		}
		fc.Append(f)
	}
	return fc
}
