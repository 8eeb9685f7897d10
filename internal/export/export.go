// Package export turns a route snapshot into interchange payloads. All
// exporters are pure transforms over a copied snapshot: they never touch
// live tracker state, preserve point order and include every point they are
// given.
package export

import (
	"fmt"
	"time"

	"pettrack/internal/core/model"
)

// Format selects an export encoding.
type Format string

const (
	FormatGPX  Format = "gpx"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a wire format tag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatGPX, FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Payload is a rendered route document.
type Payload struct {
	Format      Format `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
	PointCount  int    `json:"pointCount"`
}

// Export renders the snapshot in the requested format. An empty snapshot
// fails with model.ErrEmptyRoute; a non-empty one never fails.
func Export(format Format, trackerID string, points []model.RoutePoint, exportedAt time.Time) (*Payload, error) {
	if len(points) == 0 {
		return nil, model.ErrEmptyRoute
	}

	var content []byte
	var contentType string
	var err error

	switch format {
	case FormatGPX:
		content, err = renderGPX(trackerID, points)
		contentType = "application/gpx+xml"
	case FormatJSON:
		content, err = renderJSON(trackerID, points, exportedAt)
		contentType = "application/json"
	case FormatCSV:
		content, err = renderCSV(points)
		contentType = "text/csv"
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return &Payload{
		Format:      format,
		Filename:    filename(format, trackerID, exportedAt),
		ContentType: contentType,
		Content:     content,
		PointCount:  len(points),
	}, nil
}

func filename(format Format, trackerID string, at time.Time) string {
	return fmt.Sprintf("route_%s_%s.%s", trackerID, at.UTC().Format("20060102T150405Z"), format)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
