package route

import (
	"pettrack/internal/core/geo"
	"pettrack/internal/core/model"
)

// TotalDistance sums the haversine distances between consecutive points.
// Buffered points already passed coordinate validation, so legs cannot fail
// it; a leg that somehow does contributes nothing.
func TotalDistance(points []model.RoutePoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		d, err := geo.Distance(
			points[i-1].Latitude, points[i-1].Longitude,
			points[i].Latitude, points[i].Longitude,
		)
		if err != nil {
			continue
		}
		total += d
	}
	return total
}
