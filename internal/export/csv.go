package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"pettrack/internal/core/model"
)

var csvHeader = []string{"timestamp", "latitude", "longitude", "altitude", "accuracy", "speed", "heading"}

// renderCSV emits one row per point after the header. Absent optional fields
// render as empty cells.
func renderCSV(points []model.RoutePoint) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, p := range points {
		row := []string{
			formatTimestamp(p.Timestamp),
			formatCoord(p.Latitude),
			formatCoord(p.Longitude),
			formatOptional(p.Altitude),
			formatOptional(p.Accuracy),
			formatOptional(p.Speed),
			formatOptional(p.Heading),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
