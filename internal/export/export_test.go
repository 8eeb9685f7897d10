package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"pettrack/internal/core/model"
)

func floatPtr(v float64) *float64 { return &v }

func testPoints() []model.RoutePoint {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.RoutePoint{
		{
			Latitude:  52.52,
			Longitude: 13.405,
			Timestamp: base,
			Accuracy:  floatPtr(12),
			Altitude:  floatPtr(34.5),
			Source:    model.SourceSatellite,
		},
		{
			Latitude:  52.521,
			Longitude: 13.406,
			Timestamp: base.Add(2 * time.Minute),
			Speed:     floatPtr(1.4),
			Heading:   floatPtr(270),
			Source:    model.SourceNetwork,
		},
		{
			Latitude:  52.522,
			Longitude: 13.407,
			Timestamp: base.Add(5 * time.Minute),
			Source:    model.SourceSatellite,
		},
	}
}

func TestExportEmptySnapshot(t *testing.T) {
	for _, format := range []Format{FormatGPX, FormatJSON, FormatCSV} {
		if _, err := Export(format, "rex", nil, time.Now()); !errors.Is(err, model.ErrEmptyRoute) {
			t.Errorf("Export(%s, empty) error = %v, want ErrEmptyRoute", format, err)
		}
	}
}

func TestExportGPX(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	payload, err := Export(FormatGPX, "rex", testPoints(), at)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if payload.PointCount != 3 {
		t.Errorf("PointCount = %d, want 3", payload.PointCount)
	}
	if payload.Filename != "route_rex_20260301T100000Z.gpx" {
		t.Errorf("unexpected filename %q", payload.Filename)
	}

	content := string(payload.Content)
	if !strings.Contains(content, `version="1.1"`) {
		t.Error("GPX output missing version attribute")
	}
	if got := strings.Count(content, "<trkpt"); got != 3 {
		t.Errorf("trkpt count = %d, want 3", got)
	}
	if got := strings.Count(content, "<trkseg>"); got != 1 {
		t.Errorf("trkseg count = %d, want 1", got)
	}
	if !strings.Contains(content, "<ele>34.5</ele>") {
		t.Error("GPX output missing elevation for first point")
	}
	if !strings.Contains(content, "<time>2026-03-01T09:00:00Z</time>") {
		t.Error("GPX output missing ISO-8601 UTC time")
	}
	// The second point has no altitude and must not emit an ele element.
	if got := strings.Count(content, "<ele>"); got != 1 {
		t.Errorf("ele element count = %d, want 1", got)
	}
}

func TestExportJSON(t *testing.T) {
	points := testPoints()
	payload, err := Export(FormatJSON, "rex", points, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var doc struct {
		TrackerID  string `json:"tracker_id"`
		ExportedAt string `json:"exported_at"`
		Routes     []struct {
			Start           string   `json:"start"`
			End             string   `json:"end"`
			DurationMinutes float64  `json:"duration_minutes"`
			DistanceKM      float64  `json:"distance_km"`
			AvgSpeedKMH     *float64 `json:"avg_speed_kmh"`
			Quality         string   `json:"quality"`
			Points          []struct {
				Latitude  float64  `json:"latitude"`
				Timestamp string   `json:"timestamp"`
				Accuracy  *float64 `json:"accuracy"`
				Source    string   `json:"source"`
			} `json:"points"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(payload.Content, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if doc.TrackerID != "rex" {
		t.Errorf("tracker_id = %q, want rex", doc.TrackerID)
	}
	if len(doc.Routes) != 1 {
		t.Fatalf("routes length = %d, want 1", len(doc.Routes))
	}
	r := doc.Routes[0]
	if len(r.Points) != len(points) {
		t.Errorf("point count = %d, want %d", len(r.Points), len(points))
	}
	if r.Quality != "basic" {
		t.Errorf("quality = %q, want basic", r.Quality)
	}
	if r.DurationMinutes != 5 {
		t.Errorf("duration_minutes = %v, want 5", r.DurationMinutes)
	}
	if r.AvgSpeedKMH == nil || *r.AvgSpeedKMH <= 0 {
		t.Errorf("avg_speed_kmh = %v, want positive", r.AvgSpeedKMH)
	}
	if r.Points[0].Source != "satellite" || r.Points[0].Accuracy == nil {
		t.Errorf("first point lost optional fields: %+v", r.Points[0])
	}
	// Order preserved.
	if r.Points[0].Latitude != 52.52 || r.Points[2].Latitude != 52.522 {
		t.Errorf("point order not preserved: %+v", r.Points)
	}
}

func TestExportJSONZeroDuration(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	points := []model.RoutePoint{{Latitude: 1, Longitude: 2, Timestamp: ts}}
	payload, err := Export(FormatJSON, "rex", points, ts)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !bytes.Contains(payload.Content, []byte(`"avg_speed_kmh": null`)) {
		t.Error("zero-duration route should carry a null average speed")
	}
}

func TestExportCSV(t *testing.T) {
	payload, err := Export(FormatCSV, "rex", testPoints(), time.Now())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(payload.Content), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want header plus 3 rows", len(lines))
	}
	if lines[0] != "timestamp,latitude,longitude,altitude,accuracy,speed,heading" {
		t.Errorf("unexpected header %q", lines[0])
	}
	// First point has altitude and accuracy but no speed or heading.
	if lines[1] != "2026-03-01T09:00:00Z,52.52,13.405,34.5,12,," {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if strings.Contains(string(payload.Content), "None") || strings.Contains(string(payload.Content), "null") {
		t.Error("absent fields must render as empty cells")
	}
}

func TestExportCSVSinglePoint(t *testing.T) {
	points := testPoints()[:1]
	payload, err := Export(FormatCSV, "rex", points, time.Now())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(payload.Content), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("line count = %d, want header plus exactly one row", len(lines))
	}
}

func TestExportIdempotence(t *testing.T) {
	points := testPoints()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, format := range []Format{FormatGPX, FormatCSV, FormatJSON} {
		first, err := Export(format, "rex", points, at)
		if err != nil {
			t.Fatalf("Export(%s) error: %v", format, err)
		}
		second, err := Export(format, "rex", points, at)
		if err != nil {
			t.Fatalf("Export(%s) error: %v", format, err)
		}
		if !bytes.Equal(first.Content, second.Content) {
			t.Errorf("%s export is not byte-identical across runs", format)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("kml"); err == nil {
		t.Error("ParseFormat should reject unsupported formats")
	}
	f, err := ParseFormat("gpx")
	if err != nil || f != FormatGPX {
		t.Errorf("ParseFormat(gpx) = %v, %v", f, err)
	}
}
