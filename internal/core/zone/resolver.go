// Package zone classifies coordinates against caller-supplied circular
// zones.
package zone

import (
	"pettrack/internal/core/geo"
	"pettrack/internal/core/model"
)

// Resolve maps a coordinate to a zone label. The first zone in supplied
// order whose center lies within its radius of the point wins; callers order
// zones by priority, small specific zones before large general ones. A
// matching zone named "home" resolves to the home label; no match resolves
// to away.
func Resolve(lat, lon float64, zones []model.Zone) string {
	for _, z := range zones {
		d, err := geo.Distance(lat, lon, z.Latitude, z.Longitude)
		if err != nil {
			continue
		}
		if d <= z.RadiusM {
			if z.IsHome() {
				return model.ZoneHome
			}
			return z.Name
		}
	}
	return model.ZoneAway
}
