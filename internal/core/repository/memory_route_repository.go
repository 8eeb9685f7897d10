package repository

import (
	"sort"
	"sync"

	"pettrack/internal/core/model"
)

type inMemoryRouteRepository struct {
	routes map[string]*model.FinalizedRoute
	mutex  sync.RWMutex
}

// NewInMemoryRouteRepository returns a RouteRepository backed by a map, used
// when no archive database is configured and in tests.
func NewInMemoryRouteRepository() RouteRepository {
	return &inMemoryRouteRepository{
		routes: make(map[string]*model.FinalizedRoute),
	}
}

func (r *inMemoryRouteRepository) Save(route *model.FinalizedRoute) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.routes[route.SessionID] = route
	return nil
}

func (r *inMemoryRouteRepository) FindByTrackerID(trackerID string) ([]*model.FinalizedRoute, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.FinalizedRoute
	for _, route := range r.routes {
		if route.TrackerID == trackerID {
			result = append(result, route)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

func (r *inMemoryRouteRepository) FindBySessionID(sessionID string) (*model.FinalizedRoute, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if route, exists := r.routes[sessionID]; exists {
		return route, nil
	}
	return nil, nil
}
