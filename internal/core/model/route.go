package model

import (
	"time"

	"github.com/google/uuid"
)

// RoutePoint is one recorded position in a route. Points are owned by the
// route buffer of their tracker; exports always work on copies so a payload
// stays valid while the buffer keeps mutating.
type RoutePoint struct {
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Accuracy  *float64  `json:"accuracy,omitempty" bson:"accuracy,omitempty"`
	Altitude  *float64  `json:"altitude,omitempty" bson:"altitude,omitempty"`
	Speed     *float64  `json:"speed,omitempty" bson:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty" bson:"heading,omitempty"`
	Source    Source    `json:"source,omitempty" bson:"source,omitempty"`
}

// Clone returns a deep copy of the point.
func (p RoutePoint) Clone() RoutePoint {
	p.Accuracy = copyFloat(p.Accuracy)
	p.Altitude = copyFloat(p.Altitude)
	p.Speed = copyFloat(p.Speed)
	p.Heading = copyFloat(p.Heading)
	return p
}

// RouteSession is the lifecycle wrapper around one recording. A session goes
// active exactly once; stopping is terminal and a new session object is
// created on the next start.
type RouteSession struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	StartTime time.Time `json:"startTime" bson:"startTime"`
	EndTime   time.Time `json:"endTime,omitempty" bson:"endTime,omitempty"`
	DistanceM float64   `json:"distanceM" bson:"distanceM"`
	DurationS float64   `json:"durationS" bson:"durationS"`
	Active    bool      `json:"active" bson:"active"`
}

func NewRouteSession(name string, start time.Time) *RouteSession {
	return &RouteSession{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: start.UTC(),
		Active:    true,
	}
}

// FinalizedRoute is the handoff structure produced when a recording stops.
// Persistence and notification delivery of finalized routes belong to
// external collaborators; the core only produces the structure.
type FinalizedRoute struct {
	SessionID string       `json:"sessionId" bson:"sessionId"`
	TrackerID string       `json:"trackerId" bson:"trackerId"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	StartTime time.Time    `json:"startTime" bson:"startTime"`
	EndTime   time.Time    `json:"endTime" bson:"endTime"`
	DistanceM float64      `json:"distanceM" bson:"distanceM"`
	DurationS float64      `json:"durationS" bson:"durationS"`
	Points    []RoutePoint `json:"points" bson:"points"`
}
