// Package httptransport wires the HTTP routes onto one chi router.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apphandler "lendfold/internal/application/handler"
	"lendfold/internal/export"
	"lendfold/internal/platform/metrics"
	"lendfold/internal/platform/middleware"
	"lendfold/internal/transport/http/shared"
)

// Deps carries everything the router mounts. Health is optional; when nil the
// health endpoint only reports process liveness.
type Deps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Verifier     middleware.IdentityVerifier
	Applications *apphandler.Handler
	Export       *export.Handler
	Health       func(ctx context.Context) error
}

// NewRouter builds the service router: open health and metrics endpoints,
// identity-protected application and export routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", handleHealth(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireIdentity(deps.Verifier, deps.Logger))
		deps.Applications.Register(protected)
		deps.Export.Register(protected)
	})

	return r
}

func handleHealth(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
