package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwellhq/moodlog/internal/api"
	"github.com/inkwellhq/moodlog/internal/config"
	"github.com/inkwellhq/moodlog/internal/journal"
	"github.com/inkwellhq/moodlog/internal/mood"
	"github.com/inkwellhq/moodlog/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "Moodlog - journaling backend with mood analytics",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Optional .env, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Initialize logger
	logger := slog.New(newLogHandler(cfg.Log))
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "version", Version)

	// 4. Initialize store (migrations, WAL mode)
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	count, err := db.CountEntries(ctx)
	if err != nil {
		db.Close()
		return err
	}
	slog.Info("store initialized", "path", cfg.Database.Path, "entries", count)

	// 5. Select the mood extractor: remote classifier when a key is
	// configured, offline lexicon otherwise.
	var extractor mood.Extractor
	if cfg.Classifier.APIKey != "" {
		extractor = mood.NewOpenAI(cfg.Classifier.APIKey, cfg.Classifier.Model)
	} else {
		extractor = mood.NewLexicon()
	}
	slog.Info("mood extractor initialized", "classifier", extractor.Name())

	// 6. Wire the entry service and HTTP router
	service := journal.NewService(db, extractor, journal.Options{
		Fallback: journal.FallbackPolicy{
			Enabled: cfg.Classifier.Fallback.Enabled,
			Mood:    cfg.Classifier.Fallback.Mood,
		},
		ExtractTimeout: time.Duration(cfg.Classifier.Timeout),
	})
	router := api.NewRouter(api.NewHandler(service))
	slog.Info("router initialized")

	// 7. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 8. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully. Anything else is a real failure.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	// 9. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 10. Graceful shutdown: drain in-flight requests, then close the store
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func newLogHandler(cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.NewJSONHandler(os.Stdout, opts)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
