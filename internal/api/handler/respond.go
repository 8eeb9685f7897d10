package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pettrack/internal/core/model"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps the core error taxonomy to HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrTrackerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidCoordinate):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrAlreadyRecording), errors.Is(err, model.ErrNotRecording):
		status = http.StatusConflict
	case errors.Is(err, model.ErrEmptyRoute):
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
