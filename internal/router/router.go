package router

import (
	"net/http"

	_ "cloud-events-sync/docs"
	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/middleware"
	"cloud-events-sync/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Controller compartido por todos los requests (un solo cache/estado por proceso).
	Controller *events.Controller

	Logger logger.Logger // puede ser nil
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	events.RegisterRoutes(r, opts.Controller)

	return r
}
