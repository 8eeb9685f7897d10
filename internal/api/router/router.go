package router

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"pettrack/internal/api/handler"
	"pettrack/internal/api/middleware"
	"pettrack/internal/core/service"
)

func NewRouter(trackerService service.TrackerService, log *zap.Logger) http.Handler {
	trackerHandler := handler.NewTrackerHandler(trackerService)
	locationHandler := handler.NewLocationHandler(trackerService)
	routeHandler := handler.NewRouteHandler(trackerService)
	logging := middleware.LoggingMiddleware(log)

	mux := http.NewServeMux()

	withMiddleware := func(h http.Handler) http.Handler {
		return middleware.CORSMiddleware(logging(h))
	}

	mux.Handle("/health", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	})))

	mux.Handle("/api/trackers", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			trackerHandler.Register(w, r)
		case http.MethodGet:
			trackerHandler.List(w, r)
		case http.MethodDelete:
			trackerHandler.Remove(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/api/trackers/get", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		trackerHandler.Get(w, r)
	})))

	mux.Handle("/api/trackers/state", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		trackerHandler.State(w, r)
	})))

	mux.Handle("/api/locations", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		locationHandler.Update(w, r)
	})))

	mux.Handle("/api/routes/start", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeHandler.Start(w, r)
	})))

	mux.Handle("/api/routes/stop", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeHandler.Stop(w, r)
	})))

	mux.Handle("/api/routes/export", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeHandler.Export(w, r)
	})))

	mux.Handle("/api/routes/history", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeHandler.History(w, r)
	})))

	mux.Handle("/api/routes/distance", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeHandler.Distance(w, r)
	})))

	mux.Handle("/api/routes/archived", withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeHandler.Archived(w, r)
	})))

	return mux
}
