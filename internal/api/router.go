package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imaginasean/weather-modeling/internal/config"
	"github.com/imaginasean/weather-modeling/internal/derived"
	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/internal/observability"
	"github.com/imaginasean/weather-modeling/internal/sounding"
	"github.com/imaginasean/weather-modeling/internal/websocket"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// Router assembles the HTTP routes
type Router struct {
	handler  *Handler
	config   *config.Config
	wsServer *websocket.Server
	registry *prometheus.Registry
	logger   *logger.Logger
}

// NewRouter creates a new Router with all handlers wired
func NewRouter(nwsClient *nws.Client, derivedService *derived.Service, soundingService *sounding.Service, metrics *observability.Metrics, registry *prometheus.Registry, cfg *config.Config, log *logger.Logger, wsServer *websocket.Server) *Router {
	handler := NewHandler(nwsClient, derivedService, soundingService, metrics, cfg, log, wsServer)
	if wsServer != nil {
		wsServer.SetMessageHandler(handler)
	}
	return &Router{
		handler:  handler,
		config:   cfg,
		wsServer: wsServer,
		registry: registry,
		logger:   log.Named("http"),
	}
}

// Routes returns the configured chi router
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(rt.logger))
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(rt.config.Server.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", rt.handler.GetHealth)

		r.Get("/forecast/derived", rt.handler.GetDerivedForecast)
		r.Get("/forecast/derived/latest", rt.handler.GetLatestDerivedForecast)

		r.Get("/simulate/advection-1d", rt.handler.SimulateAdvection1D)
		r.Get("/simulate/advection-2d", rt.handler.SimulateAdvection2D)

		r.Get("/sounding", rt.handler.GetSounding)
		r.Get("/sounding/history", rt.handler.GetSoundingHistory)

		r.Get("/glossary", rt.handler.GetGlossary)
		r.Get("/glossary/{term}", rt.handler.GetGlossaryTerm)

		// Raw provider passthrough
		r.Route("/nws", func(r chi.Router) {
			r.Get("/points", rt.handler.ProxyPoints)
			r.Get("/forecast", rt.handler.ProxyForecast)
			r.Get("/forecast/hourly", rt.handler.ProxyHourlyForecast)
			r.Get("/gridpoints", rt.handler.ProxyGridpoint)
			r.Get("/observations/latest", rt.handler.ProxyObservation)
			r.Get("/alerts", rt.handler.ProxyAlerts)
		})
	})

	if rt.wsServer != nil {
		r.Get("/ws", rt.wsServer.HandleConnection)
	}

	if rt.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))
	}

	return r
}

// requestLogger logs each request at debug level with its outcome. The
// WebSocket route is skipped, a hijacked connection has no meaningful status.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/ws" {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("Request handled",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", ww.Status()),
				logger.Duration("duration", time.Since(start)))
		})
	}
}

// corsMiddleware applies the configured allowed origins. An entry of "*"
// allows any origin.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
