package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/bootstrap"
	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/roster-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	tables, err := config.LoadTables(cfg.App.TablesFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SeedDurations(ctx, tables.ShiftDurations); err != nil {
		return err
	}

	services := bootstrap.NewServices(cfg, tables, store)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	shiftHandler := appHTTP.NewShiftLookupHandler(services.Lookup)
	factsHandler := appHTTP.NewAttendanceFactsHandler(services.Facts)
	syncHandler := appHTTP.NewSyncHandler(services.Sync)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		shiftHandler,
		factsHandler,
		syncHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Remote.BaseURL != "" && cfg.Sync.CronInterval > 0 {
		cron.NewSyncJobs(services.Sync, cfg.Location()).RegisterJobs(scheduler, cfg.Sync.CronInterval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
