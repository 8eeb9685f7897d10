package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pettrack/internal/core/service"
)

type RouteHandler struct {
	trackerService service.TrackerService
}

func NewRouteHandler(trackerService service.TrackerService) *RouteHandler {
	return &RouteHandler{
		trackerService: trackerService,
	}
}

type startRouteRequest struct {
	TrackerID string `json:"trackerId"`
	Name      string `json:"name"`
}

func (h *RouteHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TrackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	sessionID, err := h.trackerService.StartRoute(req.TrackerID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"sessionId": sessionID})
}

type stopRouteRequest struct {
	TrackerID string `json:"trackerId"`
	Save      *bool  `json:"save"`
}

func (h *RouteHandler) Stop(w http.ResponseWriter, r *http.Request) {
	var req stopRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TrackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	save := req.Save == nil || *req.Save
	finalized, err := h.trackerService.StopRoute(r.Context(), req.TrackerID, save)
	if err != nil {
		respondError(w, err)
		return
	}
	if finalized == nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
		return
	}
	respondJSON(w, http.StatusOK, finalized)
}

func (h *RouteHandler) Export(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "gpx"
	}

	payload, err := h.trackerService.ExportRoute(trackerID, format)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+payload.Filename+"\"")
	w.WriteHeader(http.StatusOK)
	w.Write(payload.Content)
}

func (h *RouteHandler) History(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	since := parseSince(r.URL.Query().Get("since"))
	points, err := h.trackerService.History(trackerID, since)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"trackerId": trackerID,
		"count":     len(points),
		"points":    points,
	})
}

func (h *RouteHandler) Distance(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	since := parseSince(r.URL.Query().Get("since"))
	meters, err := h.trackerService.DistanceTraveled(trackerID, since)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"trackerId": trackerID,
		"meters":    meters,
	})
}

// Archived lists finalized routes handed to the archive.
func (h *RouteHandler) Archived(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	routes, err := h.trackerService.TrackerRoutes(trackerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, routes)
}

// parseSince reads a Go duration string; empty or malformed means the whole
// retained history.
func parseSince(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
