// Package derived orchestrates the forecast derivation pipeline: upstream
// fetch, series normalization, bias adjustment, persistence blending, and
// uncertainty banding. A background refresher keeps the configured home
// station's derived forecast warm and pushes updates to streaming clients.
package derived

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imaginasean/weather-modeling/internal/forecast"
	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/internal/observability"
	"github.com/imaginasean/weather-modeling/internal/websocket"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// Result is the full output of the derivation pipeline for one location.
type Result struct {
	Latitude    float64               `json:"latitude"`
	Longitude   float64               `json:"longitude"`
	Station     string                `json:"station,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
	TauHours    float64               `json:"tau_hours"`
	Observation *forecast.Observation `json:"observation,omitempty"`
	Bias        *forecast.Bias        `json:"bias,omitempty"`
	Raw         []forecast.RawStep    `json:"raw"`
	Adjusted    []forecast.RawStep    `json:"adjusted"`
	Blended     []forecast.RawStep    `json:"blended,omitempty"`
	Bands       []forecast.BandStep   `json:"bands"`
}

// Request selects a derivation target. Zero Tau means the configured
// default; an empty Station means the first station of the resolved grid.
type Request struct {
	Latitude  float64
	Longitude float64
	Station   string
	Tau       float64
}

// Archiver persists observation anchors for later comparison views.
type Archiver interface {
	SaveObservation(station string, obs *forecast.Observation) error
}

// Broadcaster pushes refreshed forecasts to streaming clients.
type Broadcaster interface {
	Broadcast(message *websocket.Message)
}

// Config holds the derivation settings and the home station the background
// refresher keeps warm.
type Config struct {
	TauHours               float64
	HorizonSteps           int
	Bands                  forecast.HalfWidths
	RefreshIntervalMinutes int
	HomeLatitude           float64
	HomeLongitude          float64
}

// Service runs the derivation pipeline on demand and on a refresh schedule.
type Service struct {
	config      Config
	nwsClient   *nws.Client
	archive     Archiver
	broadcaster Broadcaster
	metrics     *observability.Metrics
	logger      *logger.Logger

	// Service lifecycle
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex

	// Latest home-station result
	latest *Result
}

// NewService creates a derivation service. archive, broadcaster, and
// metrics may be nil.
func NewService(cfg Config, nwsClient *nws.Client, archive Archiver, broadcaster Broadcaster, metrics *observability.Metrics, log *logger.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		config:      cfg,
		nwsClient:   nwsClient,
		archive:     archive,
		broadcaster: broadcaster,
		metrics:     metrics,
		logger:      log.Named("derived-service"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins the background home-station refresh
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil // Already started
	}

	s.logger.Info("Starting derived forecast service",
		logger.Float64("home_lat", s.config.HomeLatitude),
		logger.Float64("home_lon", s.config.HomeLongitude),
		logger.Int("refresh_interval_minutes", s.config.RefreshIntervalMinutes))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.backgroundRefresh()
	}()

	s.started = true
	return nil
}

// Stop gracefully shuts down the service
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil // Already stopped
	}
	s.started = false
	s.mu.Unlock()

	s.logger.Info("Stopping derived forecast service")
	s.cancel()
	// Wait without holding mu: a refresh finishing during shutdown takes the
	// same lock to publish its result.
	s.wg.Wait()

	s.logger.Info("Derived forecast service stopped")
	return nil
}

// Latest returns the most recent home-station result, or nil when the first
// refresh has not completed yet.
func (s *Service) Latest() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Derive runs the full pipeline for one request: grid resolution, hourly
// forecast + gridded series + latest observation fetch, normalization, then
// bias adjustment, persistence blending, and banding.
func (s *Service) Derive(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	tau := req.Tau
	if tau == 0 {
		tau = s.config.TauHours
	}

	points, err := s.nwsClient.Points(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("resolving forecast grid: %w", err)
	}

	hourly, err := s.nwsClient.Forecast(ctx, points.Properties.ForecastHourly)
	if err != nil {
		return nil, fmt.Errorf("fetching hourly forecast: %w", err)
	}
	periods := nws.ToPeriods(hourly)
	if len(periods) == 0 {
		return nil, fmt.Errorf("upstream returned no forecast periods")
	}

	// The gridded series refine the human-authored periods; a gridpoint
	// failure degrades to periods-only derivation rather than failing the
	// request.
	var gridded forecast.GriddedSeries
	gridpoint, err := s.nwsClient.Gridpoint(ctx, points.Properties.GridID, points.Properties.GridX, points.Properties.GridY)
	if err != nil {
		s.logger.Warn("Failed to fetch gridpoint data, deriving from periods only", logger.Error(err))
	} else {
		gridded = nws.ToGridded(gridpoint)
	}

	stationID, obs := s.latestObservation(ctx, points, req.Station)

	raw := forecast.Normalize(periods, gridded, s.config.HorizonSteps)
	if len(raw) == 0 {
		return nil, fmt.Errorf("no usable forecast steps after normalization")
	}

	bias := forecast.BiasAtZero(obs, raw)
	adjusted, err := forecast.Adjusted(raw, bias, tau)
	if err != nil {
		return nil, err
	}
	blended, err := forecast.Blend(raw, obs, tau)
	if err != nil {
		return nil, err
	}
	bands := forecast.Bands(adjusted, s.config.Bands)

	if s.metrics != nil {
		s.metrics.DerivedForecasts.Inc()
	}
	if s.archive != nil && obs != nil {
		if err := s.archive.SaveObservation(stationID, obs); err != nil {
			s.logger.Warn("Failed to archive observation", logger.Error(err))
		}
	}

	s.logger.Debug("Derived forecast computed",
		logger.Float64("lat", req.Latitude),
		logger.Float64("lon", req.Longitude),
		logger.String("station", stationID),
		logger.Int("steps", len(raw)),
		logger.Duration("duration", time.Since(start)))

	return &Result{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Station:     stationID,
		GeneratedAt: time.Now().UTC(),
		TauHours:    tau,
		Observation: obs,
		Bias:        bias,
		Raw:         raw,
		Adjusted:    adjusted,
		Blended:     blended,
		Bands:       bands,
	}, nil
}

// latestObservation resolves the observing station (explicit override or
// first station for the grid) and fetches its latest observation. Both
// lookups are best effort; derivation proceeds without an anchor when no
// observation is available.
func (s *Service) latestObservation(ctx context.Context, points *nws.PointsResponse, override string) (string, *forecast.Observation) {
	stationID := override
	if stationID == "" {
		stations, err := s.nwsClient.Stations(ctx, points.Properties.ObservationStations)
		if err != nil || len(stations.Features) == 0 {
			s.logger.Warn("No observation stations for grid", logger.Error(err))
			return "", nil
		}
		stationID = stations.Features[0].Properties.StationIdentifier
	}

	latest, err := s.nwsClient.LatestObservation(ctx, stationID)
	if err != nil {
		s.logger.Warn("Failed to fetch latest observation",
			logger.String("station", stationID),
			logger.Error(err))
		return stationID, nil
	}
	return stationID, nws.ToObservation(latest)
}

// backgroundRefresh runs the periodic home-station refresh
func (s *Service) backgroundRefresh() {
	refreshInterval := time.Duration(s.config.RefreshIntervalMinutes) * time.Minute
	if refreshInterval < time.Minute {
		refreshInterval = 30 * time.Minute
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	s.logger.Info("Background forecast refresh started",
		logger.String("interval", refreshInterval.String()))

	// Initial fetch
	s.refreshHome()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Background forecast refresh stopped")
			return
		case <-ticker.C:
			s.logger.Debug("Periodic forecast refresh triggered")
			s.refreshHome()
		}
	}
}

// refreshHome derives the home-station forecast, caches it, and pushes it
// to streaming clients.
func (s *Service) refreshHome() {
	ctx, cancel := context.WithTimeout(s.ctx, time.Minute)
	defer cancel()

	result, err := s.Derive(ctx, Request{
		Latitude:  s.config.HomeLatitude,
		Longitude: s.config.HomeLongitude,
	})
	if err != nil {
		s.logger.Error("Home station forecast refresh failed", logger.Error(err))
		return
	}

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(&websocket.Message{
			Type: websocket.MessageTypeForecastPush,
			Data: map[string]any{
				"station":      result.Station,
				"generated_at": result.GeneratedAt,
				"bands":        result.Bands,
			},
		})
	}
}
