package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"petclinic/internal/platform/metrics"
	"petclinic/internal/platform/middleware"
	"petclinic/pkg/platform/httputil"
	"petclinic/pkg/platform/middleware/metadata"
	"petclinic/pkg/platform/middleware/requesttime"
)

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type routerConfig struct {
	requestTimeout time.Duration
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	checks         map[string]HealthChecker
}

type Option func(*routerConfig)

// WithRequestTimeout bounds every request's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *routerConfig) {
		c.requestTimeout = d
	}
}

// WithMetrics records per-route latency and serves /metrics from gatherer.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(c *routerConfig) {
		c.metrics = m
		c.gatherer = gatherer
	}
}

// WithHealthCheck adds a named dependency to /health.
func WithHealthCheck(name string, check HealthChecker) Option {
	return func(c *routerConfig) {
		c.checks[name] = check
	}
}

// NewRouter builds the chi router with the shared middleware chain, the
// operational endpoints and every feature's routes.
func NewRouter(logger *slog.Logger, features []Registrar, opts ...Option) chi.Router {
	cfg := &routerConfig{
		requestTimeout: 30 * time.Second,
		checks:         map[string]HealthChecker{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(cfg.requestTimeout))
	r.Use(middleware.LatencyMiddleware(cfg.metrics))

	r.Get("/health", healthHandler(logger, cfg.checks))
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	for _, feature := range features {
		feature.Register(r)
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(logger *slog.Logger, checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok"}
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}

		degraded := false
		for name, check := range checks {
			if err := check.Health(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"dependency", name,
					"error", err.Error(),
					"request_id", middleware.GetRequestID(ctx),
				)
				resp.Checks[name] = "down"
				degraded = true
				continue
			}
			resp.Checks[name] = "ok"
		}

		if degraded {
			resp.Status = "degraded"
			httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
