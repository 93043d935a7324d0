package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubereport/internal/captions"
	"tubereport/internal/config"
	"tubereport/internal/database"
	"tubereport/internal/featured"
	"tubereport/internal/report"
	"tubereport/internal/scheduler"
	"tubereport/internal/server"
	"tubereport/internal/summarizer"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	completer, err := summarizer.NewOpenAICompleter(cfg.APIKey, cfg.APIBaseURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create completer",
			"error", err,
			"apiBaseURL", cfg.APIBaseURL)

		return
	}
	log.InfoContext(ctx, "Completer is initialized",
		"apiBaseURL", cfg.APIBaseURL,
		"defaultModel", cfg.DefaultModel)

	source := captions.NewClient(cfg.CaptionLangs, log)
	generator := report.NewGenerator(completer, log)

	refresher := featured.NewRefresher(db, cfg.ChannelFeeds, log)
	sched := scheduler.New(ctx, refresher, log)

	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.HourlyRefreshSpec,
			"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.HourlyRefreshSpec,
		"feedCount", len(cfg.ChannelFeeds))

	handler := server.NewHandler(source, generator, db, cfg.DefaultModel, log)
	srv := server.New(cfg.Port, handler)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server failed",
				"error", err,
				"addr", srv.Addr)
			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", srv.Addr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down server",
			"error", err)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}
