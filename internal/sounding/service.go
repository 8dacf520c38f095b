package sounding

import (
	"context"
	"fmt"
	"time"

	"github.com/imaginasean/weather-modeling/internal/cache"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// Observed soundings are launched twice daily, so a fetched profile stays
// fresh for hours.
const defaultCacheTTL = 6 * time.Hour

// minProfileLevels is the smallest profile worth serving; shorter listings
// are usually truncated transmissions.
const minProfileLevels = 5

// Archiver persists fetched soundings and serves them back for the history
// comparison view.
type Archiver interface {
	SaveSounding(s *Sounding) error
	RecentSoundings(stationID, limit int) ([]*Sounding, error)
}

// History request limits.
const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// ServiceConfig configures the sounding service.
type ServiceConfig struct {
	Wyoming         WyomingConfig `toml:"wyoming"`
	CacheTTLMinutes int           `toml:"cache_ttl_minutes"`
}

// DefaultServiceConfig returns the stock sounding service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Wyoming:         DefaultWyomingConfig(),
		CacheTTLMinutes: int(defaultCacheTTL / time.Minute),
	}
}

// Service resolves soundings for a location: nearest-station fetch from the
// Wyoming archive with caching and archival, demo profile as the fallback,
// and history reads over past archived fetches.
type Service struct {
	client  *WyomingClient
	cache   *cache.TTL
	archive Archiver
	logger  *logger.Logger
}

// NewService creates a sounding service. archive may be nil.
func NewService(config ServiceConfig, archive Archiver, log *logger.Logger) *Service {
	ttl := time.Duration(config.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		client:  NewWyomingClient(config.Wyoming, log),
		cache:   cache.New(ttl),
		archive: archive,
		logger:  log.Named("sounding-service"),
	}
}

// GetSounding returns the observed sounding nearest to (lat, lon), trying
// the 12Z then 00Z launches, falling back to the demo profile when neither
// is available. The returned sounding always carries analyzed features.
func (s *Service) GetSounding(ctx context.Context, lat, lon float64) *Sounding {
	station := NearestStation(lat, lon)

	for _, fromTime := range []string{"1200", "0000"} {
		key := fmt.Sprintf("wyoming:%d:%s", station.ID, fromTime)
		if cached, ok := s.cache.Get(key); ok {
			return cached.(*Sounding)
		}

		snd, err := s.fetchObserved(ctx, station, fromTime)
		if err != nil {
			s.logger.Warn("Observed sounding unavailable",
				logger.Int("station", station.ID),
				logger.String("from_time", fromTime),
				logger.Error(err))
			continue
		}

		s.cache.Set(key, snd)
		if s.archive != nil {
			if err := s.archive.SaveSounding(snd); err != nil {
				s.logger.Warn("Failed to archive sounding", logger.Error(err))
			}
		}
		return snd
	}

	s.logger.Info("Serving demo sounding",
		logger.Float64("lat", lat),
		logger.Float64("lon", lon))
	return DemoSounding()
}

// History returns archived soundings for the station nearest to (lat, lon),
// newest first. Without an archive the history is empty.
func (s *Service) History(lat, lon float64, limit int) (Station, []*Sounding, error) {
	station := NearestStation(lat, lon)
	if s.archive == nil {
		return station, nil, nil
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	past, err := s.archive.RecentSoundings(station.ID, limit)
	if err != nil {
		return station, nil, fmt.Errorf("reading sounding history: %w", err)
	}
	return station, past, nil
}

func (s *Service) fetchObserved(ctx context.Context, station Station, fromTime string) (*Sounding, error) {
	text, err := s.client.Fetch(ctx, station.ID, fromTime)
	if err != nil {
		return nil, err
	}

	profile := ParseWyomingText(text)
	if len(profile) < minProfileLevels {
		return nil, fmt.Errorf("sounding too short: %d levels", len(profile))
	}

	features, err := AnalyzeProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("invalid sounding profile: %w", err)
	}

	capeJkg, cinJkg := ParseIndices(text)
	return &Sounding{
		Source:     "uwyo",
		StationID:  station.ID,
		StationLat: station.Lat,
		StationLon: station.Lon,
		FromTime:   fromTime,
		CAPEJkg:    capeJkg,
		CINJkg:     cinJkg,
		Profile:    profile,
		Features:   features,
	}, nil
}
