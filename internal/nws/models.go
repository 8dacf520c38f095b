// Package nws is the client for the api.weather.gov data provider: grid
// resolution, forecasts, raw gridded data, observations, and alerts, with
// retry and response caching.
package nws

import (
	"encoding/json"
	"time"
)

// Config configures the NWS client.
type Config struct {
	BaseURL               string `toml:"base_url"`
	UserAgent             string `toml:"user_agent"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	MaxRetries            int    `toml:"max_retries"`
	CacheTTLMinutes       int    `toml:"cache_ttl_minutes"`
}

// DefaultConfig returns the stock NWS client configuration. The provider
// asks for an identifying User-Agent and rate-limit-friendly caching.
func DefaultConfig() Config {
	return Config{
		BaseURL:               "https://api.weather.gov",
		UserAgent:             "wxlab/1.0 (educational project)",
		RequestTimeoutSeconds: 15,
		MaxRetries:            2,
		CacheTTLMinutes:       5,
	}
}

// QuantitativeValue is the provider's unit-tagged scalar. Value is nil when
// the quantity was not measured.
type QuantitativeValue struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

// PointsResponse carries the grid metadata and follow-up URLs for a lat/lon.
type PointsResponse struct {
	Properties struct {
		GridID              string `json:"gridId"`
		GridX               int    `json:"gridX"`
		GridY               int    `json:"gridY"`
		Forecast            string `json:"forecast"`
		ForecastHourly      string `json:"forecastHourly"`
		ObservationStations string `json:"observationStations"`
		ForecastZone        string `json:"forecastZone"`
	} `json:"properties"`
}

// ForecastPeriod is one human-authored forecast period.
type ForecastPeriod struct {
	Number                     int               `json:"number"`
	StartTime                  time.Time         `json:"startTime"`
	EndTime                    time.Time         `json:"endTime"`
	Temperature                float64           `json:"temperature"`
	TemperatureUnit            string            `json:"temperatureUnit"`
	WindSpeed                  string            `json:"windSpeed"`
	WindDirection              string            `json:"windDirection"`
	ShortForecast              string            `json:"shortForecast"`
	ProbabilityOfPrecipitation QuantitativeValue `json:"probabilityOfPrecipitation"`
}

// ForecastResponse is the (hourly or zone) forecast payload.
type ForecastResponse struct {
	Properties struct {
		Updated time.Time        `json:"updated"`
		Periods []ForecastPeriod `json:"periods"`
	} `json:"properties"`
}

// GridpointSeries is one sparse model-derived series keyed by valid-time
// interval.
type GridpointSeries struct {
	UOM    string `json:"uom"`
	Values []struct {
		ValidTime string   `json:"validTime"`
		Value     *float64 `json:"value"`
	} `json:"values"`
}

// GridpointResponse carries the raw gridded data for one grid cell. Only the
// series the derivation layer consumes are typed.
type GridpointResponse struct {
	Properties struct {
		Temperature   GridpointSeries `json:"temperature"`
		WindSpeed     GridpointSeries `json:"windSpeed"`
		WindDirection GridpointSeries `json:"windDirection"`
	} `json:"properties"`
}

// ObservationResponse is the latest station observation.
type ObservationResponse struct {
	Properties struct {
		Timestamp     time.Time         `json:"timestamp"`
		Temperature   QuantitativeValue `json:"temperature"`
		Dewpoint      QuantitativeValue `json:"dewpoint"`
		WindSpeed     QuantitativeValue `json:"windSpeed"`
		WindDirection QuantitativeValue `json:"windDirection"`
	} `json:"properties"`
}

// StationsResponse lists observation stations for a grid.
type StationsResponse struct {
	Features []struct {
		Properties struct {
			StationIdentifier string `json:"stationIdentifier"`
			Name              string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// Raw is an unmodified provider payload, passed through by the proxy routes.
type Raw = json.RawMessage
