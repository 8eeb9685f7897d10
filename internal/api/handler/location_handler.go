package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"pettrack/internal/core/service"
)

type LocationHandler struct {
	trackerService service.TrackerService
}

func NewLocationHandler(trackerService service.TrackerService) *LocationHandler {
	return &LocationHandler{
		trackerService: trackerService,
	}
}

// optFloat decodes a JSON number, also accepting numeric strings. Anything
// else is treated as absent rather than failing the whole update.
type optFloat struct {
	value *float64
}

func (o *optFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		o.value = &f
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			o.value = &f
		}
	}
	return nil
}

type updateLocationRequest struct {
	TrackerID string   `json:"trackerId"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  optFloat `json:"accuracy"`
	Altitude  optFloat `json:"altitude"`
	Speed     optFloat `json:"speed"`
	Heading   optFloat `json:"heading"`
	Battery   optFloat `json:"battery"`
	Source    string   `json:"source"`
	Timestamp string   `json:"timestamp"`
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TrackerID == "" {
		http.Error(w, "Tracker ID required", http.StatusBadRequest)
		return
	}

	update := service.LocationUpdate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy.value,
		Altitude:  req.Altitude.value,
		Speed:     req.Speed.value,
		Heading:   req.Heading.value,
		Battery:   req.Battery.value,
		Source:    req.Source,
	}
	// A malformed timestamp defaults to receive time, like any absent one.
	if ts, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
		update.Timestamp = ts
	}

	if err := h.trackerService.UpdateLocation(r.Context(), req.TrackerID, update); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
