package geo

import (
	"math"

	"pettrack/internal/core/model"
)

// earthRadiusM is the fixed spherical Earth radius used for all distance
// calculations.
const earthRadiusM = 6371000.0

// ValidLatitude reports whether lat is within -90..90.
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is within -180..180.
func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

// ValidCoordinate reports whether the pair is a legal coordinate.
func ValidCoordinate(lat, lon float64) bool {
	return ValidLatitude(lat) && ValidLongitude(lon)
}

// Distance returns the great-circle distance in meters between two
// coordinates using the haversine formula. The result is symmetric, zero for
// identical points and never NaN for valid inputs; out-of-range inputs are a
// caller error and return ErrInvalidCoordinate.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if !ValidCoordinate(lat1, lon1) || !ValidCoordinate(lat2, lon2) {
		return 0, model.ErrInvalidCoordinate
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// Rounding can push a marginally past 1 for near-antipodal points.
	if a > 1 {
		a = 1
	} else if a < 0 {
		a = 0
	}

	return 2 * earthRadiusM * math.Asin(math.Sqrt(a)), nil
}
