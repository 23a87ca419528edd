// Package persist keeps the task collection in a local key-value store.
//
// The whole collection lives under a single key as a JSON array. Loading
// happens once at startup; every change overwrites the record from a
// background writer so callers never wait on storage.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"todos/internal/models"
	"todos/internal/store"
)

// DefaultKey is the key the collection is stored under.
const DefaultKey = "tasks"

// State is the adapter's position in its Uninitialized → Loading → Ready
// lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Adapter loads and saves the task collection.
type Adapter struct {
	store  store.Store
	key    string
	logger zerolog.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	state   State
	pending models.Tasks
	dirty   bool
	issued  uint64
	written uint64
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// New creates an adapter over s and starts its writer. An empty key selects
// DefaultKey. Call Close to drain pending saves.
func New(s store.Store, key string, logger zerolog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{
		store:  s,
		key:    key,
		logger: logger.With().Str("component", "persist").Str("key", key).Logger(),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	a.idle = sync.NewCond(&a.mu)
	go a.run()
	return a
}

// State reports where the adapter is in its lifecycle.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Load fetches the stored collection. A missing record, a storage failure or
// an undecodable value all yield an empty collection; failures are logged
// and never returned.
func (a *Adapter) Load(ctx context.Context) models.Tasks {
	a.setState(Loading)
	defer a.setState(Ready)

	raw, ok, err := a.store.Get(ctx, a.key)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to load tasks")
		return models.Tasks{}
	}
	if !ok {
		return models.Tasks{}
	}

	tasks, err := Decode(raw)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to decode stored tasks")
		return models.Tasks{}
	}

	tasks, dropped := tasks.Sanitize()
	if dropped > 0 {
		a.logger.Warn().Int("dropped", dropped).Msg("discarded invalid stored tasks")
	}

	a.logger.Debug().Int("count", len(tasks)).Msg("loaded tasks")
	return tasks
}

// Save schedules tasks to overwrite the stored record and returns at once.
// When saves pile up only the most recent snapshot is written.
func (a *Adapter) Save(tasks models.Tasks) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.logger.Warn().Int("count", len(tasks)).Msg("save after close dropped")
		return
	}
	a.pending = tasks.Clone()
	a.dirty = true
	a.issued++
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every save issued so far has been attempted.
func (a *Adapter) Flush() {
	a.mu.Lock()
	defer a.mu.Unlock()
	target := a.issued
	for a.written < target {
		a.idle.Wait()
	}
}

// Close writes any pending snapshot and stops the writer.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.quit)
	<-a.done
	return nil
}

func (a *Adapter) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Adapter) run() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.drain()
		case <-a.quit:
			a.drain()
			return
		}
	}
}

// drain writes the latest pending snapshot until nothing is left.
func (a *Adapter) drain() {
	for {
		a.mu.Lock()
		if !a.dirty {
			a.mu.Unlock()
			return
		}
		snapshot, seq := a.pending, a.issued
		a.pending, a.dirty = nil, false
		a.mu.Unlock()

		a.write(snapshot)

		a.mu.Lock()
		a.written = seq
		a.idle.Broadcast()
		a.mu.Unlock()
	}
}

func (a *Adapter) write(tasks models.Tasks) {
	raw, err := Encode(tasks)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to encode tasks")
		return
	}
	if err := a.store.Set(context.Background(), a.key, raw); err != nil {
		a.logger.Error().Err(err).Int("count", len(tasks)).Msg("failed to save tasks")
		return
	}
	a.logger.Debug().Int("count", len(tasks)).Msg("saved tasks")
}

// Encode serializes a collection to the persisted JSON layout.
func Encode(tasks models.Tasks) (string, error) {
	if tasks == nil {
		tasks = models.Tasks{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(b), nil
}

// Decode parses the persisted JSON layout.
func Decode(raw string) (models.Tasks, error) {
	var tasks models.Tasks
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = models.Tasks{}
	}
	return tasks, nil
}
