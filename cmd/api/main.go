package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud-events-sync/internal/config"
	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/notify"
	"cloud-events-sync/internal/platform/logger"
	"cloud-events-sync/internal/platform/natsutil"
	"cloud-events-sync/internal/refresh"
	"cloud-events-sync/internal/router"
)

// se reemplaza en tests
var openRecordStore = router.NewRecordStore

// @title cloud-events-sync API
// @version 1.0
// @description Cache local de eventos sincronizado con un store remoto de registros.
// @BasePath /
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewFromEnv().Error("load config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log := logger.New(cfg.LoggerOptions("cloud-events-sync"))

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// run levanta todo y bloquea hasta SIGINT/SIGTERM; los defers cierran store y NATS
// también en los caminos de error.
func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rs, closeStore, err := openRecordStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open record store (%s): %w", cfg.Backend, err)
	}
	defer closeStore()

	ctrl := events.NewController(events.NewStore(cfg.StoreConfig(), rs), log)

	if strings.TrimSpace(cfg.NATS.URL) != "" {
		nc, err := natsutil.ConnectWithRetry(cfg.NATS.URL, "cloud-events-sync", 5*time.Second)
		if err != nil {
			return fmt.Errorf("connect nats %s: %w", cfg.NATS.URL, err)
		}
		defer nc.Close()

		detach := notify.New(natsutil.ConnPublisher{Conn: nc.Conn}, cfg.NATS.Subject, cfg.Container.ID, log).Attach(ctrl)
		defer detach()
	}

	// carga inicial; si falla queda en Failed y el cliente puede reintentar
	if err := ctrl.FetchAll(ctx); err != nil {
		log.Warn("initial fetch failed", map[string]any{"error": err.Error()})
	}

	if strings.TrimSpace(cfg.RefreshCron) != "" {
		rf, err := refresh.New(cfg.RefreshCron, ctrl, log)
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshCron, err)
		}
		rf.Start()
		defer rf.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router.NewRouter(router.Options{Controller: ctrl, Logger: log}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Listen, "backend": cfg.Backend})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped", nil)
	return nil
}
