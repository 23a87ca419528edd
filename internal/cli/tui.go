package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"todos/internal/config"
	"todos/internal/logging"
	"todos/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the task screen in the terminal",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the screen, so logs go next to the database.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logFile, err := logging.OpenFile(filepath.Join(dataDir, "todos.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := logging.Setup(logFile, cfg.LogLevel, "json")
	if err != nil {
		return err
	}

	rt, err := openRuntime(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return ui.Run(ctx, rt.ctrl)
}
