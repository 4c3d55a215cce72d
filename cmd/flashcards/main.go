// Command flashcards runs the local engine behind the flashcards desktop
// application: file-backed deck and user storage, the review scheduler, and
// the HTTP command surface the GUI talks to.
//
// Everything platform-specific lives here. The core packages receive the
// storage root as plain configuration and never resolve OS paths
// themselves.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/murermader/flashcards/internal/api"
	"github.com/murermader/flashcards/internal/config"
	"github.com/murermader/flashcards/internal/domain/srs"
	"github.com/murermader/flashcards/internal/platform/filestore"
	"github.com/murermader/flashcards/internal/platform/logger"
	"github.com/murermader/flashcards/internal/service/review"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "flashcards:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("flashcards", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a config file (optional)")
	flags.String("storage.dir", "", "storage root directory (overrides the platform default)")
	flags.Int("server.port", 0, "port for the local command surface")
	flags.String("server.log_level", "", "log level: debug, info, warn, or error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(*configFile, flags, defaultStorageDir())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fs := filestore.New(cfg.Storage.Dir, nil)
	if err := fs.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to prepare storage directories: %w", err)
	}

	log := logger.Setup(cfg.Server, fs.LogDir())
	log.Info("configuration loaded",
		"storage_dir", cfg.Storage.Dir,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	scheduler := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinIntervalDays: cfg.SRS.MinIntervalDays,
		HardMultiplier:  cfg.SRS.HardMultiplier,
		OkIncrementDays: cfg.SRS.OkIncrementDays,
		EasyMultiplier:  cfg.SRS.EasyMultiplier,
	}))

	router := api.NewRouter(
		api.Stores{Decks: fs, Users: fs},
		review.NewRegistry(),
		scheduler,
		log,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("command surface listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}

// defaultStorageDir resolves the platform-specific storage root.
// Windows uses %LOCALAPPDATA%\flashcards; everything else uses
// ~/Library/Application Support/flashcards, the layout existing
// installations already have on disk.
func defaultStorageDir() string {
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "flashcards")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Last resort: relative to the working directory.
		return "flashcards"
	}
	return filepath.Join(home, "Library", "Application Support", "flashcards")
}
