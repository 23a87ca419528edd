package handlers

import (
	"errors"
	"net/http"

	"todos/internal/app"
	"todos/internal/models"
)

// CreateTask adds a task from the submitted text.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if _, err := h.ctrl.Add(r.FormValue("text")); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyText):
			h.renderScreen(w, r, http.StatusUnprocessableEntity)
		case errors.Is(err, app.ErrDialogOpen):
			h.renderScreen(w, r, http.StatusConflict)
		case errors.Is(err, models.ErrInvalidText):
			respondError(w, http.StatusBadRequest, "task text must be valid UTF-8")
		default:
			h.respondServerError(w, err)
		}
		return
	}

	h.finish(w, r)
}

// ToggleTask toggles the completion status of a task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.ctrl.Toggle(id); errors.Is(err, app.ErrDialogOpen) {
		h.renderScreen(w, r, http.StatusConflict)
		return
	}
	h.finish(w, r)
}

// DeleteTask opens the delete confirmation for a task. Nothing is removed
// until ConfirmDelete.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	// Unknown ids fall through to the unchanged screen.
	if err := h.ctrl.RequestRemove(id); errors.Is(err, app.ErrDialogOpen) {
		h.renderScreen(w, r, http.StatusConflict)
		return
	}
	h.finish(w, r)
}

// ConfirmDelete removes the task awaiting confirmation.
func (h *Handlers) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ConfirmRemove()
	h.finish(w, r)
}

// CancelDelete closes the delete confirmation.
func (h *Handlers) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.ctrl.CancelRemove()
	h.finish(w, r)
}
