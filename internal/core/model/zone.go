package model

import "strings"

// Zone labels returned by zone resolution. Any configured zone whose name is
// "home" resolves to ZoneHome; coordinates matching no zone resolve to
// ZoneAway.
const (
	ZoneHome = "home"
	ZoneAway = "away"
)

// Zone is a named circular region supplied by the caller. Zones are matched
// in the order supplied; callers put small specific zones before large
// general ones.
type Zone struct {
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
	RadiusM   float64 `json:"radiusM" yaml:"radius_m" validate:"gt=0"`
}

// IsHome reports whether the zone is the designated home zone.
func (z Zone) IsHome() bool {
	return strings.EqualFold(z.Name, ZoneHome)
}
