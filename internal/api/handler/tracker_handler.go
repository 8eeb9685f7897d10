package handler

import (
	"encoding/json"
	"net/http"

	"pettrack/internal/core/service"
)

type TrackerHandler struct {
	trackerService service.TrackerService
}

func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		trackerService: trackerService,
	}
}

type registerTrackerRequest struct {
	Name string `json:"name"`
}

func (h *TrackerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.RegisterTracker(req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusCreated, tracker)
}

func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.trackerService.ListTrackers())
}

func (h *TrackerHandler) Get(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.GetTracker(trackerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tracker)
}

func (h *TrackerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	if err := h.trackerService.RemoveTracker(r.Context(), trackerID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// State serves the read-only display snapshot.
func (h *TrackerHandler) State(w http.ResponseWriter, r *http.Request) {
	trackerID := r.URL.Query().Get("trackerId")
	if trackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	snap, err := h.trackerService.CurrentState(r.Context(), trackerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
