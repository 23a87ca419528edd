// Package app holds the screen state of the to-do list and the operations
// that change it. Both the web and the terminal screen render a State
// snapshot and call back into a Controller.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"todos/internal/models"
)

// ErrDialogOpen is returned for changes attempted while the validation
// alert or the delete confirmation is open.
var ErrDialogOpen = errors.New("a dialog is open")

// ErrUnknownTask is returned when no task has the requested id.
var ErrUnknownTask = errors.New("task not found")

// Persister is the persistence contract the controller relies on.
type Persister interface {
	Load(ctx context.Context) models.Tasks
	Save(tasks models.Tasks)
}

// Alert is a blocking message the user has to dismiss.
type Alert struct {
	Title   string
	Message string
}

var emptyTextAlert = Alert{
	Title:   "Attention",
	Message: "Please enter a task.",
}

// State is a read-only snapshot of everything the screen shows.
type State struct {
	Title string
	Tasks models.Tasks
	Draft string
	Dark  bool

	// Hydrated is false until the stored collection has been loaded.
	Hydrated bool

	// Alert is set while a validation prompt is open.
	Alert *Alert

	// PendingRemoval is the task awaiting delete confirmation.
	PendingRemoval *models.Task
}

// Blocked reports whether a dialog is open. While it is, the collection
// cannot be changed until the dialog is answered.
func (s State) Blocked() bool {
	return s.Alert != nil || s.PendingRemoval != nil
}

// Controller owns the application state. All methods are safe for
// concurrent use; mutations are applied one at a time in call order.
type Controller struct {
	persist Persister
	logger  zerolog.Logger

	mu       sync.Mutex
	title    string
	tasks    models.Tasks
	draft    string
	dark     bool
	hydrated bool
	alert    *Alert
	pending  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(c *Controller) {
		c.title = title
	}
}

// WithDark starts the screen in the dark theme.
func WithDark(dark bool) Option {
	return func(c *Controller) {
		c.dark = dark
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller with an empty collection.
func NewController(p Persister, opts ...Option) *Controller {
	c := &Controller{
		persist: p,
		logger:  zerolog.Nop(),
		title:   "My Tasks",
		tasks:   models.Tasks{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Title:    c.title,
		Tasks:    c.tasks.Clone(),
		Draft:    c.draft,
		Dark:     c.dark,
		Hydrated: c.hydrated,
	}
	if c.alert != nil {
		a := *c.alert
		s.Alert = &a
	}
	if c.pending != "" {
		if t, ok := c.tasks.Find(c.pending); ok {
			s.PendingRemoval = &t
		}
	}
	return s
}

// Tasks returns a copy of the current collection.
func (c *Controller) Tasks() models.Tasks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.Clone()
}

// Hydrate loads the stored collection and replaces the in-memory one.
// Loading does not trigger a save.
func (c *Controller) Hydrate(ctx context.Context) {
	tasks := c.persist.Load(ctx)
	c.ReplaceAll(tasks)
}

// ReplaceAll swaps in tasks wholesale. It is meant for hydration and does
// not save. Whatever was edited before it runs is lost.
func (c *Controller) ReplaceAll(tasks models.Tasks) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tasks = tasks.Clone()
	c.hydrated = true
	if _, ok := c.tasks.Find(c.pending); !ok {
		c.pending = ""
	}
	c.logger.Debug().Int("count", len(c.tasks)).Msg("hydrated tasks")
}

// SetDraft records the text currently typed in the input field.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Submit adds the current draft as a task.
func (c *Controller) Submit() (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(c.draft)
}

// Add appends a task built from raw and clears the draft. Blank input opens
// the validation alert, leaves the collection alone and returns
// models.ErrEmptyText. Nothing is added while a dialog is open.
func (c *Controller) Add(raw string) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(raw)
}

func (c *Controller) add(raw string) (models.Task, error) {
	if c.blocked() {
		return models.Task{}, ErrDialogOpen
	}

	task, err := models.NewTask(raw)
	if err != nil {
		if errors.Is(err, models.ErrEmptyText) {
			a := emptyTextAlert
			c.alert = &a
			c.draft = raw
		}
		return models.Task{}, err
	}

	c.tasks = c.tasks.Append(task)
	c.draft = ""
	c.commit("add")
	return task, nil
}

// Toggle flips the completion flag of the task with the given id.
// Unknown ids are ignored.
func (c *Controller) Toggle(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blocked() {
		return ErrDialogOpen
	}
	c.tasks = c.tasks.Toggle(id)
	c.commit("toggle")
	return nil
}

// RequestRemove opens the delete confirmation for the task with the given
// id. Asking again for the task already awaiting confirmation is a no-op;
// asking for another task while a dialog is open returns ErrDialogOpen.
func (c *Controller) RequestRemove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == id && id != "" {
		return nil
	}
	if c.blocked() {
		return ErrDialogOpen
	}
	if _, ok := c.tasks.Find(id); !ok {
		return ErrUnknownTask
	}
	c.pending = id
	return nil
}

// ConfirmRemove deletes the task awaiting confirmation, if any.
func (c *Controller) ConfirmRemove() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == "" {
		return
	}
	id := c.pending
	c.pending = ""
	c.tasks = c.tasks.Remove(id)
	c.commit("remove")
}

// CancelRemove closes the delete confirmation without deleting anything.
func (c *Controller) CancelRemove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = ""
}

// DismissAlert closes the validation alert.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
}

// ToggleTheme switches between the light and dark theme. The theme is not
// part of the stored collection.
func (c *Controller) ToggleTheme() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dark = !c.dark
	return c.dark
}

func (c *Controller) blocked() bool {
	return c.alert != nil || c.pending != ""
}

// commit hands the current collection to the persister. Callers hold c.mu,
// which keeps saves in mutation order.
func (c *Controller) commit(op string) {
	c.logger.Debug().Str("op", op).Int("count", len(c.tasks)).Msg("tasks changed")
	c.persist.Save(c.tasks)
}
