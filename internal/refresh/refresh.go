package refresh

import (
	"context"
	"strings"

	"cloud-events-sync/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Fetcher es lo que el refresher invoca en cada tick (lo implementa *events.Controller).
type Fetcher interface {
	FetchAll(ctx context.Context) error
}

// Refresher corre FetchAll según un schedule cron. No reintenta: un fallo queda
// en el estado del controller y el próximo tick vuelve a intentar.
type Refresher struct {
	cron    *cron.Cron
	fetcher Fetcher
	log     logger.Logger
}

func New(spec string, f Fetcher, log logger.Logger) (*Refresher, error) {
	if log == nil {
		log = logger.Nop()
	}
	r := &Refresher{
		cron:    cron.New(),
		fetcher: f,
		log:     log.With(map[string]any{"component": "refresh", "schedule": spec}),
	}
	if _, err := r.cron.AddFunc(strings.TrimSpace(spec), r.Tick); err != nil {
		return nil, err
	}
	return r, nil
}

// Tick hace un refresh inmediato.
func (r *Refresher) Tick() {
	if err := r.fetcher.FetchAll(context.Background()); err != nil {
		r.log.Warn("scheduled refresh failed", map[string]any{"error": err.Error()})
		return
	}
	r.log.Debug("scheduled refresh done", nil)
}

func (r *Refresher) Start() { r.cron.Start() }

// Stop detiene el schedule y espera a que termine un tick en curso.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
