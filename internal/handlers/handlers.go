package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"todos/internal/app"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	ctrl      *app.Controller
	templates *template.Template
	logger    zerolog.Logger
}

// New creates a new Handlers instance.
func New(ctrl *app.Controller, tmpl *template.Template, logger zerolog.Logger) *Handlers {
	return &Handlers{
		ctrl:      ctrl,
		templates: tmpl,
		logger:    logger.With().Str("component", "web").Logger(),
	}
}

// parseID extracts a task ID from URL parameters.
func parseID(r *http.Request, param string) (string, error) {
	id := chi.URLParam(r, param)
	if id == "" {
		return "", errors.New("missing id")
	}
	return id, nil
}

// isPartial reports whether the client asked for the screen fragment
// instead of a full page.
func isPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("internal server error")
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handlers) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(status)
		return
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.respondServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderScreen renders the whole page, or just the screen fragment for
// partial requests.
func (h *Handlers) renderScreen(w http.ResponseWriter, r *http.Request, status int) {
	name := "index.html"
	if isPartial(r) {
		name = "screen.html"
	}
	h.render(w, status, name, h.ctrl.State())
}

// finish completes a mutating request: partial requests get the refreshed
// screen, full-page form posts are redirected back to it.
func (h *Handlers) finish(w http.ResponseWriter, r *http.Request) {
	if isPartial(r) {
		h.renderScreen(w, r, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
