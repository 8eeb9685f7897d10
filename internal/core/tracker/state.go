// Package tracker holds the per-entity aggregate composing arbitration,
// route buffering, zone classification and session recording behind one
// lock.
package tracker

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"pettrack/internal/core/arbiter"
	"pettrack/internal/core/model"
	"pettrack/internal/core/route"
	"pettrack/internal/core/zone"
	"pettrack/internal/export"
)

// Config carries the tuning a tracker receives from its environment.
type Config struct {
	MinUpdateInterval time.Duration
	MaxRouteAge       time.Duration
	MaxRoutePoints    int
	DefaultAccuracyM  float64
	Zones             []model.Zone
}

// State is the long-lived aggregate for one tracked entity. All mutation
// goes through its methods; a single-writer mutex serializes update, session
// and read operations originating from independent callers. Exports and
// history reads copy under the lock and render outside it, so they do not
// block further appends.
type State struct {
	mu sync.Mutex

	id   string
	name string
	cfg  Config

	last      *model.PositionSample // head of the accepted stream
	displayed *model.PositionSample // current display location, priority-gated
	zoneLabel string

	buffer   *route.Buffer
	recorder *route.Recorder

	log *zap.Logger
	now func() time.Time
}

// Snapshot is the read-only view handed to display and telemetry consumers.
type Snapshot struct {
	TrackerID       string    `json:"trackerId"`
	Name            string    `json:"name"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	Accuracy        *float64  `json:"accuracy,omitempty"`
	Battery         *float64  `json:"battery,omitempty"`
	Zone            string    `json:"zone,omitempty"`
	Source          string    `json:"source,omitempty"`
	LastSeen        time.Time `json:"lastSeen,omitempty"`
	RecordingActive bool      `json:"recordingActive"`
	PointCount      int       `json:"pointCount"`
}

func New(id, name string, cfg Config, log *zap.Logger) *State {
	buffer := route.NewBuffer(cfg.MaxRouteAge, cfg.MaxRoutePoints)
	return &State{
		id:       id,
		name:     name,
		cfg:      cfg,
		buffer:   buffer,
		recorder: route.NewRecorder(buffer, log),
		log:      log,
		now:      time.Now,
	}
}

func (s *State) ID() string { return s.id }

// UpdateLocation runs a sample through arbitration and, when accepted,
// appends it to the route history and updates the display location and zone
// according to the verdict. A zero timestamp defaults to now; a missing
// accuracy defaults to the configured radius. Rate-limited samples return
// model.ErrRateLimited after a debug log; callers treat that as a no-op, not
// a failure.
func (s *State) UpdateLocation(sample *model.PositionSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sample.Timestamp.IsZero() {
		sample.Timestamp = s.now().UTC()
	}
	if sample.Accuracy == nil && s.cfg.DefaultAccuracyM > 0 {
		acc := s.cfg.DefaultAccuracyM
		sample.Accuracy = &acc
	}

	verdict, err := arbiter.Evaluate(sample, s.last, s.cfg.MinUpdateInterval)
	if err != nil {
		if errors.Is(err, model.ErrRateLimited) {
			s.log.Debug("sample rate limited",
				zap.String("tracker", s.id),
				zap.Time("timestamp", sample.Timestamp),
				zap.String("source", string(sample.Source)))
		}
		return err
	}

	s.last = sample
	s.buffer.Append(sample.RoutePoint())

	if verdict.UpdateDisplay {
		s.displayed = sample
		s.zoneLabel = zone.Resolve(sample.Latitude, sample.Longitude, s.cfg.Zones)
	}
	return nil
}

// CurrentState returns a display snapshot.
func (s *State) CurrentState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		TrackerID:       s.id,
		Name:            s.name,
		Zone:            s.zoneLabel,
		RecordingActive: s.recorder.Active(),
		PointCount:      s.buffer.Len(),
	}
	if s.displayed != nil {
		lat, lon := s.displayed.Latitude, s.displayed.Longitude
		snap.Latitude = &lat
		snap.Longitude = &lon
		snap.Accuracy = s.displayed.Accuracy
		snap.Battery = s.displayed.Battery
		snap.Source = string(s.displayed.Source)
		snap.LastSeen = s.displayed.Timestamp
	}
	if s.last != nil {
		// The stream head may be newer than the displayed fix.
		snap.LastSeen = s.last.Timestamp
		if s.last.Battery != nil {
			snap.Battery = s.last.Battery
		}
	}
	return snap
}

// StartRoute begins a new recording session.
func (s *State) StartRoute(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Start(name)
}

// StopRoute finalizes the active session. With save=false the totals are
// discarded and nil is returned.
func (s *State) StopRoute(save bool) (*model.FinalizedRoute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	finalized, err := s.recorder.Stop(save)
	if finalized != nil {
		finalized.TrackerID = s.id
	}
	return finalized, err
}

// RecordingSession returns the current session, if any.
func (s *State) RecordingSession() *model.RouteSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Session()
}

// ExportRoute renders the current route history in the requested format.
// The snapshot is copied under the lock; rendering happens outside it.
func (s *State) ExportRoute(format export.Format) (*export.Payload, error) {
	s.mu.Lock()
	points := s.buffer.Snapshot(0)
	s.mu.Unlock()

	return export.Export(format, s.id, points, s.now())
}

// History returns copies of the retained points newer than now minus since.
// A non-positive since returns the whole buffer.
func (s *State) History(since time.Duration) []model.RoutePoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.buffer.Snapshot(0)
	if since <= 0 {
		return points
	}
	cutoff := s.now().Add(-since)
	for i, p := range points {
		if !p.Timestamp.Before(cutoff) {
			return points[i:]
		}
	}
	return nil
}

// DistanceTraveled sums haversine distances across the history window.
func (s *State) DistanceTraveled(since time.Duration) float64 {
	return route.TotalDistance(s.History(since))
}
