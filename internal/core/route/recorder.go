package route

import (
	"time"

	"go.uber.org/zap"

	"pettrack/internal/core/model"
)

// Recorder is the session state machine for one tracker. A recorder is
// either inactive or holds exactly one active session; stopping a session is
// terminal and the next start creates a fresh session over a cleared buffer.
//
// Session totals are not accumulated per point. Stop recomputes distance over
// the whole buffer view so the final value is the whole-history sum, free of
// compounding per-leg rounding.
type Recorder struct {
	buffer  *Buffer
	session *model.RouteSession
	log     *zap.Logger
	now     func() time.Time
}

func NewRecorder(buffer *Buffer, log *zap.Logger) *Recorder {
	return &Recorder{
		buffer: buffer,
		log:    log,
		now:    time.Now,
	}
}

// Active reports whether a recording session is in progress.
func (r *Recorder) Active() bool {
	return r.session != nil && r.session.Active
}

// Session returns the current session, or nil when none was ever started.
// The session ends when Stop is called; it is kept for inspection until the
// next Start.
func (r *Recorder) Session() *model.RouteSession {
	return r.session
}

// Start clears the route buffer and opens a new session. It fails with
// ErrAlreadyRecording when a session is active so callers can detect
// double-start bugs.
func (r *Recorder) Start(name string) (string, error) {
	if r.Active() {
		return "", model.ErrAlreadyRecording
	}
	r.buffer.Clear()
	r.session = model.NewRouteSession(name, r.now())
	r.log.Info("route recording started",
		zap.String("session", r.session.ID),
		zap.String("name", name))
	return r.session.ID, nil
}

// Stop finalizes the active session: distance is recomputed over the whole
// buffer, duration is wall time since start, the session is deactivated and
// its end time set. With save=false the finalized totals are discarded and
// nil is returned even though the session is stopped. Stopping without an
// active session returns ErrNotRecording; the recorded points stay in the
// buffer either way until the next Start.
func (r *Recorder) Stop(save bool) (*model.FinalizedRoute, error) {
	if !r.Active() {
		r.log.Debug("stop requested with no active recording")
		return nil, model.ErrNotRecording
	}

	end := r.now()
	r.session.EndTime = end.UTC()
	r.session.DurationS = end.Sub(r.session.StartTime).Seconds()
	r.session.DistanceM = TotalDistance(r.buffer.View())
	r.session.Active = false

	r.log.Info("route recording stopped",
		zap.String("session", r.session.ID),
		zap.Float64("distanceM", r.session.DistanceM),
		zap.Float64("durationS", r.session.DurationS),
		zap.Bool("save", save))

	if !save {
		return nil, nil
	}

	return &model.FinalizedRoute{
		SessionID: r.session.ID,
		Name:      r.session.Name,
		StartTime: r.session.StartTime,
		EndTime:   r.session.EndTime,
		DistanceM: r.session.DistanceM,
		DurationS: r.session.DurationS,
		Points:    r.buffer.Snapshot(0),
	}, nil
}
