package export

import (
	"bytes"
	"encoding/xml"

	"pettrack/internal/core/model"
)

// Minimal GPX 1.1 document: one track with one segment. Elevation and time
// elements are emitted only when the point carries them.

type gpxDocument struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	Track   gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name    string     `xml:"name,omitempty"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Latitude  float64  `xml:"lat,attr"`
	Longitude float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele,omitempty"`
	Time      string   `xml:"time,omitempty"`
}

func renderGPX(trackerID string, points []model.RoutePoint) ([]byte, error) {
	doc := gpxDocument{
		Version: "1.1",
		Creator: "pettrack",
		Xmlns:   "http://www.topografix.com/GPX/1/1",
		Track: gpxTrack{
			Name: trackerID,
		},
	}
	doc.Track.Segment.Points = make([]gpxPoint, 0, len(points))
	for _, p := range points {
		gp := gpxPoint{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Elevation: p.Altitude,
		}
		if !p.Timestamp.IsZero() {
			gp.Time = formatTimestamp(p.Timestamp)
		}
		doc.Track.Segment.Points = append(doc.Track.Segment.Points, gp)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
