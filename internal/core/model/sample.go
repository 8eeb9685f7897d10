package model

import (
	"time"
)

// Source identifies where a position fix came from. Each source carries a
// fixed trust priority used by arbitration: a fix may only replace the
// displayed location when its priority is at least as high as the one it
// replaces.
type Source string

const (
	SourceSatellite Source = "satellite"
	SourceNetwork   Source = "network"
	SourcePassive   Source = "passive"
	SourceManual    Source = "manual"
	SourceUnknown   Source = "unknown"
)

// ParseSource maps a wire tag to a Source, falling back to SourceUnknown so a
// misbehaving integration degrades to lowest trust instead of failing.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceSatellite, SourceNetwork, SourcePassive, SourceManual:
		return Source(s)
	default:
		return SourceUnknown
	}
}

// Priority returns the trust level of the source, higher is more trusted.
func (s Source) Priority() int {
	switch s {
	case SourceSatellite:
		return 10
	case SourceNetwork:
		return 8
	case SourcePassive:
		return 6
	case SourceManual:
		return 5
	default:
		return 1
	}
}

// PositionSample is one accepted observation of a tracked entity. Latitude
// and longitude are always within range once a sample has passed arbitration;
// optional fields are nil when the reporting source did not supply a usable
// value.
type PositionSample struct {
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty" bson:"accuracy,omitempty"`
	Altitude  *float64  `json:"altitude,omitempty" bson:"altitude,omitempty"`
	Speed     *float64  `json:"speed,omitempty" bson:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty" bson:"heading,omitempty"`
	Battery   *float64  `json:"battery,omitempty" bson:"battery,omitempty"`
	Source    Source    `json:"source" bson:"source"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// NewPositionSample builds a sample and normalizes its optional fields:
// negative accuracy or speed and headings outside 0..360 are treated as
// absent, never as errors.
func NewPositionSample(lat, lon float64, source Source, ts time.Time) *PositionSample {
	return &PositionSample{
		Latitude:  lat,
		Longitude: lon,
		Source:    source,
		Timestamp: ts.UTC(),
	}
}

func (p *PositionSample) Priority() int {
	return p.Source.Priority()
}

// SetAccuracy stores the accuracy radius, dropping negative values.
func (p *PositionSample) SetAccuracy(m *float64) {
	p.Accuracy = nonNegative(m)
}

// SetSpeed stores the speed over ground, dropping negative values.
func (p *PositionSample) SetSpeed(mps *float64) {
	p.Speed = nonNegative(mps)
}

// SetHeading stores the heading, dropping values outside 0..360.
func (p *PositionSample) SetHeading(deg *float64) {
	if deg == nil || *deg < 0 || *deg > 360 {
		p.Heading = nil
		return
	}
	v := *deg
	p.Heading = &v
}

func (p *PositionSample) SetAltitude(m *float64) {
	if m == nil {
		p.Altitude = nil
		return
	}
	v := *m
	p.Altitude = &v
}

func (p *PositionSample) SetBattery(pct *float64) {
	p.Battery = nonNegative(pct)
}

// RoutePoint returns the persisted subset of the sample used for route
// reconstruction. The copy is deep with respect to the optional fields so the
// point stays valid independently of the sample.
func (p *PositionSample) RoutePoint() RoutePoint {
	return RoutePoint{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timestamp: p.Timestamp,
		Accuracy:  copyFloat(p.Accuracy),
		Altitude:  copyFloat(p.Altitude),
		Speed:     copyFloat(p.Speed),
		Heading:   copyFloat(p.Heading),
		Source:    p.Source,
	}
}

func nonNegative(v *float64) *float64 {
	if v == nil || *v < 0 {
		return nil
	}
	c := *v
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
