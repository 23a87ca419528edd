package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"todos/internal/app"
	"todos/internal/config"
	"todos/internal/persist"
	"todos/internal/store"
)

// runtime bundles the pieces both screens share.
type runtime struct {
	store   *store.SQLiteStore
	adapter *persist.Adapter
	ctrl    *app.Controller
}

func openRuntime(cfg *config.Config, logger zerolog.Logger) (*runtime, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	adapter := persist.New(s, cfg.StorageKey, logger)
	ctrl := app.NewController(adapter,
		app.WithTitle(cfg.Title),
		app.WithDark(cfg.Dark),
		app.WithLogger(logger.With().Str("component", "app").Logger()),
	)

	return &runtime{store: s, adapter: adapter, ctrl: ctrl}, nil
}

// Close drains pending saves before closing the database.
func (r *runtime) Close() error {
	r.adapter.Close()
	return r.store.Close()
}
