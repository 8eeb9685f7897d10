package export

import (
	"encoding/json"
	"time"

	"pettrack/internal/core/model"
	"pettrack/internal/core/route"
)

// Structured JSON export. The routes list is a singleton in the current
// design but stays a list so the document shape survives multi-route
// exports.

type jsonDocument struct {
	TrackerID  string      `json:"tracker_id"`
	ExportedAt string      `json:"exported_at"`
	Routes     []jsonRoute `json:"routes"`
}

type jsonRoute struct {
	Start           string      `json:"start"`
	End             string      `json:"end"`
	DurationMinutes float64     `json:"duration_minutes"`
	DistanceKM      float64     `json:"distance_km"`
	AvgSpeedKMH     *float64    `json:"avg_speed_kmh"`
	Quality         string      `json:"quality"`
	Points          []jsonPoint `json:"points"`
}

type jsonPoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Timestamp string   `json:"timestamp"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Source    string   `json:"source,omitempty"`
}

func renderJSON(trackerID string, points []model.RoutePoint, exportedAt time.Time) ([]byte, error) {
	start := points[0].Timestamp
	end := points[len(points)-1].Timestamp
	duration := end.Sub(start)
	distanceKM := route.TotalDistance(points) / 1000

	// Average speed is undefined for a zero-duration route.
	var avgSpeed *float64
	if duration > 0 {
		v := distanceKM / duration.Hours()
		avgSpeed = &v
	}

	r := jsonRoute{
		Start:           formatTimestamp(start),
		End:             formatTimestamp(end),
		DurationMinutes: duration.Minutes(),
		DistanceKM:      distanceKM,
		AvgSpeedKMH:     avgSpeed,
		Quality:         "basic",
		Points:          make([]jsonPoint, 0, len(points)),
	}
	for _, p := range points {
		r.Points = append(r.Points, jsonPoint{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Timestamp: formatTimestamp(p.Timestamp),
			Accuracy:  p.Accuracy,
			Altitude:  p.Altitude,
			Source:    string(p.Source),
		})
	}

	doc := jsonDocument{
		TrackerID:  trackerID,
		ExportedAt: formatTimestamp(exportedAt),
		Routes:     []jsonRoute{r},
	}
	return json.MarshalIndent(doc, "", "  ")
}
