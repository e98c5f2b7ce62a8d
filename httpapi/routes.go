package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tfkr-ae/sitefilter/domain"
	"go.uber.org/zap"
)

// Service is the part of a sitefilter session the API serves.
type Service interface {
	Exclusions(ctx context.Context) (domain.ExclusionList, error)
	Exclude(ctx context.Context, d string) (domain.ExclusionList, error)
	Include(ctx context.Context, d string) (domain.ExclusionList, error)
	SearchURL(ctx context.Context, keyword string) (string, error)
	CurrentDomain(ctx context.Context) (domain.Domain, error)
}

// Handlers serves the API routes for one Service.
type Handlers struct {
	svc     Service
	logger  *zap.Logger
	metrics *metrics
}

// NewHandlers registers the API metrics on registry. A nil logger disables logging.
func NewHandlers(svc Service, logger *zap.Logger, registry prometheus.Registerer) (*Handlers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}
	return &Handlers{svc: svc, logger: logger, metrics: m}, nil
}

// SetupRoutes builds the router. allowedOrigins lists the CORS origins; extension origins are
// always allowed.
func SetupRoutes(h *Handlers, gatherer prometheus.Gatherer, allowedOrigins ...string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: append([]string{"chrome-extension://*", "moz-extension://*"}, allowedOrigins...),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/exclusions", h.ListExclusions)
		r.Post("/exclusions", h.AddExclusion)
		r.Delete("/exclusions/{domain}", h.RemoveExclusion)
		r.Get("/search", h.Search)
		r.Get("/current", h.Current)
	})

	return r
}

func (h *Handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
