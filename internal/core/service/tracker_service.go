package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"pettrack/internal/cache"
	"pettrack/internal/config"
	"pettrack/internal/core/model"
	"pettrack/internal/core/repository"
	"pettrack/internal/core/tracker"
	"pettrack/internal/export"
)

// TrackerService is the boundary external collaborators drive. One tracker
// aggregate exists per tracked entity; trackers are independent and may be
// updated in parallel, while operations on a single tracker serialize on its
// aggregate lock.
type TrackerService interface {
	RegisterTracker(name string) (*model.Tracker, error)
	GetTracker(trackerID string) (*model.Tracker, error)
	ListTrackers() []*model.Tracker
	RemoveTracker(ctx context.Context, trackerID string) error

	UpdateLocation(ctx context.Context, trackerID string, update LocationUpdate) error
	CurrentState(ctx context.Context, trackerID string) (*tracker.Snapshot, error)

	StartRoute(trackerID, name string) (string, error)
	StopRoute(ctx context.Context, trackerID string, save bool) (*model.FinalizedRoute, error)
	ExportRoute(trackerID, format string) (*export.Payload, error)
	History(trackerID string, since time.Duration) ([]model.RoutePoint, error)
	DistanceTraveled(trackerID string, since time.Duration) (float64, error)
	TrackerRoutes(trackerID string) ([]*model.FinalizedRoute, error)
}

// LocationUpdate is one raw position report. Optional fields are nil when
// the source did not send them; out-of-band values are normalized to absent
// by the sample constructor.
type LocationUpdate struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
	Altitude  *float64
	Speed     *float64
	Heading   *float64
	Battery   *float64
	Source    string
	Timestamp time.Time
}

type trackerEntry struct {
	mu    sync.Mutex // guards info
	info  *model.Tracker
	state *tracker.State
}

func (e *trackerEntry) snapshotInfo() *model.Tracker {
	e.mu.Lock()
	defer e.mu.Unlock()
	info := *e.info
	return &info
}

func (e *trackerEntry) touch(at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.info.Touch(at)
}

type trackerService struct {
	mu       sync.RWMutex
	trackers map[string]*trackerEntry

	cfg       *config.Config
	routeRepo repository.RouteRepository
	cache     *cache.StateCache
	log       *zap.Logger
}

func NewTrackerService(cfg *config.Config, routeRepo repository.RouteRepository, stateCache *cache.StateCache, log *zap.Logger) TrackerService {
	return &trackerService{
		trackers:  make(map[string]*trackerEntry),
		cfg:       cfg,
		routeRepo: routeRepo,
		cache:     stateCache,
		log:       log,
	}
}

func (s *trackerService) trackerConfig() tracker.Config {
	return tracker.Config{
		MinUpdateInterval: s.cfg.Tracking.MinUpdateInterval(),
		MaxRouteAge:       s.cfg.Tracking.MaxRouteAge(),
		MaxRoutePoints:    s.cfg.Tracking.MaxRoutePoints,
		DefaultAccuracyM:  s.cfg.Tracking.DefaultAccuracyM,
		Zones:             s.cfg.Zones,
	}
}

func (s *trackerService) RegisterTracker(name string) (*model.Tracker, error) {
	if name == "" {
		return nil, errors.New("tracker name required")
	}

	info := model.NewTracker(name)
	entry := &trackerEntry{
		info:  info,
		state: tracker.New(info.ID, name, s.trackerConfig(), s.log),
	}

	s.mu.Lock()
	s.trackers[info.ID] = entry
	s.mu.Unlock()

	s.log.Info("tracker registered", zap.String("tracker", info.ID), zap.String("name", name))
	return info, nil
}

func (s *trackerService) GetTracker(trackerID string) (*model.Tracker, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return nil, err
	}
	return entry.snapshotInfo(), nil
}

func (s *trackerService) ListTrackers() []*model.Tracker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Tracker, 0, len(s.trackers))
	for _, entry := range s.trackers {
		result = append(result, entry.snapshotInfo())
	}
	return result
}

// RemoveTracker drops the aggregate; the route buffer contents are discarded
// with it.
func (s *trackerService) RemoveTracker(ctx context.Context, trackerID string) error {
	s.mu.Lock()
	_, exists := s.trackers[trackerID]
	delete(s.trackers, trackerID)
	s.mu.Unlock()

	if !exists {
		return model.ErrTrackerNotFound
	}
	if err := s.cache.DeleteState(ctx, trackerID); err != nil {
		s.log.Warn("failed to drop cached state", zap.String("tracker", trackerID), zap.Error(err))
	}
	s.log.Info("tracker removed", zap.String("tracker", trackerID))
	return nil
}

// UpdateLocation feeds one report through arbitration. Rate-limited samples
// are dropped quietly; invalid coordinates surface to the caller.
func (s *trackerService) UpdateLocation(ctx context.Context, trackerID string, update LocationUpdate) error {
	entry, err := s.entry(trackerID)
	if err != nil {
		return err
	}

	sample := model.NewPositionSample(update.Latitude, update.Longitude, model.ParseSource(update.Source), update.Timestamp)
	sample.SetAccuracy(update.Accuracy)
	sample.SetAltitude(update.Altitude)
	sample.SetSpeed(update.Speed)
	sample.SetHeading(update.Heading)
	sample.SetBattery(update.Battery)

	if err := entry.state.UpdateLocation(sample); err != nil {
		if errors.Is(err, model.ErrRateLimited) {
			return nil
		}
		return err
	}

	entry.touch(sample.Timestamp)
	s.refreshCache(ctx, entry)
	return nil
}

// CurrentState reads the cached snapshot when available, falling back to the
// live aggregate.
func (s *trackerService) CurrentState(ctx context.Context, trackerID string) (*tracker.Snapshot, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return nil, err
	}

	var cached tracker.Snapshot
	if err := s.cache.GetState(ctx, trackerID, &cached); err == nil {
		return &cached, nil
	}

	snap := entry.state.CurrentState()
	if err := s.cache.SetState(ctx, trackerID, snap); err != nil {
		s.log.Warn("failed to cache state", zap.String("tracker", trackerID), zap.Error(err))
	}
	return &snap, nil
}

func (s *trackerService) StartRoute(trackerID, name string) (string, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return "", err
	}
	return entry.state.StartRoute(name)
}

// StopRoute finalizes the recording and hands the route to the archive when
// requested. Archive failures are logged, not fatal; the finalized route is
// still returned to the caller.
func (s *trackerService) StopRoute(ctx context.Context, trackerID string, save bool) (*model.FinalizedRoute, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return nil, err
	}

	finalized, err := entry.state.StopRoute(save)
	if err != nil || finalized == nil {
		return nil, err
	}

	if err := s.routeRepo.Save(finalized); err != nil {
		s.log.Error("failed to archive finalized route",
			zap.String("tracker", trackerID),
			zap.String("session", finalized.SessionID),
			zap.Error(err))
	}
	s.refreshCache(ctx, entry)
	return finalized, nil
}

func (s *trackerService) ExportRoute(trackerID, format string) (*export.Payload, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return nil, err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return entry.state.ExportRoute(f)
}

func (s *trackerService) History(trackerID string, since time.Duration) ([]model.RoutePoint, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return nil, err
	}
	return entry.state.History(since), nil
}

func (s *trackerService) DistanceTraveled(trackerID string, since time.Duration) (float64, error) {
	entry, err := s.entry(trackerID)
	if err != nil {
		return 0, err
	}
	return entry.state.DistanceTraveled(since), nil
}

func (s *trackerService) TrackerRoutes(trackerID string) ([]*model.FinalizedRoute, error) {
	if _, err := s.entry(trackerID); err != nil {
		return nil, err
	}
	return s.routeRepo.FindByTrackerID(trackerID)
}

func (s *trackerService) entry(trackerID string) (*trackerEntry, error) {
	if trackerID == "" {
		return nil, errors.New("invalid tracker ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.trackers[trackerID]
	if !exists {
		return nil, model.ErrTrackerNotFound
	}
	return entry, nil
}

func (s *trackerService) refreshCache(ctx context.Context, entry *trackerEntry) {
	snap := entry.state.CurrentState()
	if err := s.cache.SetState(ctx, entry.info.ID, snap); err != nil {
		s.log.Warn("failed to cache state", zap.String("tracker", entry.info.ID), zap.Error(err))
	}
}
