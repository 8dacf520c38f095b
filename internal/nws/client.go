package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/imaginasean/weather-modeling/internal/cache"
	"github.com/imaginasean/weather-modeling/internal/observability"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// Client performs cached, retried requests against the NWS API.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *cache.TTL
	metrics    *observability.Metrics
	logger     *logger.Logger
}

// NewClient creates a new NWS client. metrics may be nil.
func NewClient(config Config, metrics *observability.Metrics, log *logger.Logger) *Client {
	ttl := time.Duration(config.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeoutSeconds) * time.Second,
		},
		cache:   cache.New(ttl),
		metrics: metrics,
		logger:  log.Named("nws-client"),
	}
}

// GetRaw fetches a provider path (or absolute provider URL) and returns the
// raw JSON body. Responses are cached by URL.
func (c *Client) GetRaw(ctx context.Context, pathOrURL string) (Raw, error) {
	url := pathOrURL
	if !strings.HasPrefix(url, "http") {
		url = c.config.BaseURL + pathOrURL
	}

	if cached, ok := c.cache.Get(url); ok {
		c.countCache("hit")
		return cached.(Raw), nil
	}
	c.countCache("miss")

	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}
	c.cache.Set(url, Raw(body))
	return body, nil
}

// fetchWithRetry performs the HTTP request with exponential backoff between
// attempts.
func (c *Client) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(500*(1<<uint(attempt-1))) * time.Millisecond
			c.logger.Info("Retrying upstream fetch",
				logger.String("url", url),
				logger.Int("attempt", attempt),
				logger.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Accept", "application/geo+json, application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("error making request to provider: %w", err)
			c.logger.Warn("Upstream request failed, may retry",
				logger.String("url", url),
				logger.Error(err),
				logger.Int("attempt", attempt+1),
				logger.Int("max_attempts", c.config.MaxRetries+1))
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			c.logger.Warn("Upstream returned non-OK status, may retry",
				logger.String("url", url),
				logger.Int("status_code", resp.StatusCode),
				logger.Int("attempt", attempt+1))
			continue
		}
		if readErr != nil {
			lastErr = fmt.Errorf("error reading provider response: %w", readErr)
			continue
		}

		c.countRequest("success")
		return body, nil
	}

	c.countRequest("error")
	c.logger.Error("All attempts to fetch upstream data failed",
		logger.String("url", url),
		logger.Error(lastErr),
		logger.Int("max_attempts", c.config.MaxRetries+1))
	return nil, lastErr
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	body, err := c.GetRaw(ctx, pathOrURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("error decoding provider response: %w", err)
	}
	return nil
}

// Points resolves grid metadata and follow-up URLs for a lat/lon.
func (c *Client) Points(ctx context.Context, lat, lon float64) (*PointsResponse, error) {
	var out PointsResponse
	path := fmt.Sprintf("/points/%.4f,%.4f", lat, lon)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forecast fetches a zone or hourly forecast from a URL returned by Points.
func (c *Client) Forecast(ctx context.Context, forecastURL string) (*ForecastResponse, error) {
	var out ForecastResponse
	if err := c.getJSON(ctx, forecastURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Gridpoint fetches the raw gridded data for a grid cell.
func (c *Client) Gridpoint(ctx context.Context, gridID string, gridX, gridY int) (*GridpointResponse, error) {
	var out GridpointResponse
	path := fmt.Sprintf("/gridpoints/%s/%d,%d", gridID, gridX, gridY)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stations lists observation stations from a URL returned by Points.
func (c *Client) Stations(ctx context.Context, stationsURL string) (*StationsResponse, error) {
	var out StationsResponse
	if err := c.getJSON(ctx, stationsURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestObservation fetches the most recent observation for a station.
func (c *Client) LatestObservation(ctx context.Context, stationID string) (*ObservationResponse, error) {
	var out ObservationResponse
	path := fmt.Sprintf("/stations/%s/observations/latest", stationID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveAlerts fetches active alerts, optionally filtered by zone or state
// area, and returns the raw payload for proxying.
func (c *Client) ActiveAlerts(ctx context.Context, zone, area string) (Raw, error) {
	path := "/alerts/active"
	switch {
	case area != "":
		path += "?area=" + area
	case zone != "":
		path += "?zone=" + zone
	}
	return c.GetRaw(ctx, path)
}

func (c *Client) countRequest(outcome string) {
	if c.metrics != nil {
		c.metrics.UpstreamRequests.WithLabelValues("nws", outcome).Inc()
	}
}

func (c *Client) countCache(result string) {
	if c.metrics != nil {
		c.metrics.CacheEvents.WithLabelValues("nws", result).Inc()
	}
}
