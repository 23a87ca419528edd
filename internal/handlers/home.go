package handlers

import (
	"encoding/json"
	"net/http"
)

// Home renders the task screen.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.renderScreen(w, r, http.StatusOK)
}

// ListTasks returns the collection as JSON in the persisted layout.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.ctrl.Tasks()); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode tasks")
	}
}
