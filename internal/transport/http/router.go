// Package httptransport assembles the service's HTTP surface.
package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	routinghandler "haven/internal/routing/handler"
	signalhandler "haven/internal/signal/handler"
	"haven/pkg/platform/httputil"
)

// HealthCheck reports readiness of one backing dependency.
type HealthCheck func(ctx context.Context) error

// Deps carries the wired handlers and health probes.
type Deps struct {
	Signals *signalhandler.Handler
	Routing *routinghandler.Handler
	Checks  map[string]HealthCheck
}

// NewRouter mounts every endpoint. Device-facing and internal routes
// carry their own middleware stacks; health and metrics stay bare so
// probes never hit auth.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	deps.Signals.Register(r)
	deps.Routing.Register(r)

	r.Get("/healthz", handleHealth(deps.Checks))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		report := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		httputil.WriteJSON(w, status, report)
	}
}
