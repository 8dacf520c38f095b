// Package api exposes the derivation layer over HTTP: derived forecasts,
// advection solver runs, soundings, glossary lookups, and raw provider
// proxy routes.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/imaginasean/weather-modeling/internal/config"
	"github.com/imaginasean/weather-modeling/internal/derived"
	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/internal/observability"
	"github.com/imaginasean/weather-modeling/internal/sounding"
	"github.com/imaginasean/weather-modeling/internal/websocket"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// Handler contains the API handlers
type Handler struct {
	nwsClient       *nws.Client
	derivedService  *derived.Service
	soundingService *sounding.Service
	metrics         *observability.Metrics
	config          *config.Config
	logger          *logger.Logger
	wsServer        *websocket.Server
}

// NewHandler creates a new API handler
func NewHandler(nwsClient *nws.Client, derivedService *derived.Service, soundingService *sounding.Service, metrics *observability.Metrics, cfg *config.Config, log *logger.Logger, wsServer *websocket.Server) *Handler {
	return &Handler{
		nwsClient:       nwsClient,
		derivedService:  derivedService,
		soundingService: soundingService,
		metrics:         metrics,
		config:          cfg,
		logger:          log.Named("api-handler"),
		wsServer:        wsServer,
	}
}

// GetHealth returns the server health status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	WriteJSON(w, http.StatusOK, response)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// coordinates resolves the lat/lon query parameters, falling back to the
// configured station when the request omits them.
func (h *Handler) coordinates(r *http.Request) (lat, lon float64, err error) {
	lat = h.config.Station.Latitude
	lon = h.config.Station.Longitude

	if s := r.URL.Query().Get("lat"); s != "" {
		lat, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	if s := r.URL.Query().Get("lon"); s != "" {
		lon, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	return lat, lon, nil
}

// queryFloat parses an optional float query parameter, returning def when it
// is absent and ok=false when it is malformed.
func queryFloat(r *http.Request, name string, def float64) (float64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
