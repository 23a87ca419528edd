package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the screen routes.
func NewRouter(h *Handlers, logger zerolog.Logger) (http.Handler, error) {
	static, err := StaticHandler()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(logger, "", 0),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Static files
	r.Handle("/static/*", static)

	// Page routes
	r.Get("/", h.Home)

	// Task routes
	r.Post("/tasks", h.CreateTask)
	r.Post("/tasks/{id}/toggle", h.ToggleTask)
	r.Post("/tasks/{id}/delete", h.DeleteTask)
	r.Post("/delete/confirm", h.ConfirmDelete)
	r.Post("/delete/cancel", h.CancelDelete)

	// Presentation routes
	r.Post("/theme", h.ToggleTheme)
	r.Post("/alert/dismiss", h.DismissAlert)

	// API routes
	r.Get("/api/tasks", h.ListTasks)

	return r, nil
}
