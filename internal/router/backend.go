package router

import (
	"context"
	"fmt"
	"time"

	"cloud-events-sync/internal/adapters/storage/cloud"
	mem "cloud-events-sync/internal/adapters/storage/memory"
	pg "cloud-events-sync/internal/adapters/storage/postgres"
	"cloud-events-sync/internal/config"
	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/platform/logger"
)

// NewRecordStore abre el backend configurado. close libera recursos (puede ser no-op).
func NewRecordStore(ctx context.Context, cfg *config.Config, log logger.Logger) (events.RecordStore, func(), error) {
	if log == nil {
		log = logger.Nop()
	}
	noop := func() {}

	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := pg.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("ensure schema: %w", err)
		}
		log.Info("record store ready", map[string]any{"backend": cfg.Backend})
		return pg.NewRecordsRepo(db), func() { _ = db.Close() }, nil

	case config.BackendCloud:
		c, err := cloud.NewClient(cloud.Config{
			BaseURL:     cfg.Cloud.BaseURL,
			Token:       cfg.Cloud.Token,
			TokenHeader: cfg.Cloud.TokenHeader,
			Timeout:     cfg.Cloud.Timeout,
			Store:       cfg.StoreConfig(),
		})
		if err != nil {
			return nil, noop, err
		}
		log.Info("record store ready", map[string]any{
			"backend":   cfg.Backend,
			"container": cfg.Container.ID,
			"database":  cfg.Container.Database,
		})
		return c, noop, nil

	default:
		repo := mem.NewRecordRepo()
		if cfg.SeedSampleEvents {
			store := events.NewStore(cfg.StoreConfig(), repo)
			for _, e := range events.SampleEvents(time.Now()) {
				if err := store.Create(ctx, e); err != nil {
					return nil, noop, fmt.Errorf("seed sample events: %w", err)
				}
			}
		}
		log.Info("record store ready", map[string]any{"backend": config.BackendMemory, "seeded": cfg.SeedSampleEvents})
		return repo, noop, nil
	}
}
