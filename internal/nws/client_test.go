package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaginasean/weather-modeling/pkg/logger"
)

func newTestClient(t *testing.T, upstream http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = 1
	return NewClient(cfg, nil, logger.NewNop())
}

func TestGetRaw_CachesByURL(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"ok":true}`))
	})

	first, err := client.GetRaw(context.Background(), "/points/27.9500,-82.4600")
	require.NoError(t, err)
	second, err := client.GetRaw(context.Background(), "/points/27.9500,-82.4600")
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, 1, requests)
}

func TestGetRaw_SetsUserAgent(t *testing.T) {
	var agent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	})

	_, err := client.GetRaw(context.Background(), "/alerts/active")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().UserAgent, agent)
}

func TestGetRaw_RetriesOnServerError(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"recovered":true}`))
	})

	body, err := client.GetRaw(context.Background(), "/points/1.0000,2.0000")
	require.NoError(t, err)
	assert.JSONEq(t, `{"recovered":true}`, string(body))
	assert.Equal(t, 2, requests)
}

func TestGetRaw_ExhaustsRetries(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetRaw(context.Background(), "/points/1.0000,2.0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 502")
	assert.Equal(t, 2, requests)
}

func TestPoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/points/27.9500,-82.4600", r.URL.Path)
		w.Write([]byte(`{"properties":{
			"gridId":"TBW","gridX":60,"gridY":95,
			"forecast":"https://example.test/forecast",
			"forecastHourly":"https://example.test/forecast/hourly",
			"observationStations":"https://example.test/stations"}}`))
	})

	points, err := client.Points(context.Background(), 27.95, -82.46)
	require.NoError(t, err)
	assert.Equal(t, "TBW", points.Properties.GridID)
	assert.Equal(t, 60, points.Properties.GridX)
	assert.Equal(t, 95, points.Properties.GridY)
	assert.Equal(t, "https://example.test/forecast/hourly", points.Properties.ForecastHourly)
}

func TestGridpoint_Path(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gridpoints/TBW/60,95", r.URL.Path)
		w.Write([]byte(`{"properties":{}}`))
	})

	_, err := client.Gridpoint(context.Background(), "TBW", 60, 95)
	require.NoError(t, err)
}

func TestLatestObservation_Path(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/KTPA/observations/latest", r.URL.Path)
		w.Write([]byte(`{"properties":{"temperature":{"unitCode":"wmoUnit:degC","value":25.0}}}`))
	})

	obs, err := client.LatestObservation(context.Background(), "KTPA")
	require.NoError(t, err)
	require.NotNil(t, obs.Properties.Temperature.Value)
	assert.InDelta(t, 25.0, *obs.Properties.Temperature.Value, 1e-9)
}

func TestActiveAlerts_Filters(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := client.ActiveAlerts(context.Background(), "FLZ151", "")
	require.NoError(t, err)
	assert.Equal(t, "zone=FLZ151", query)

	// Area takes precedence over zone when both are given.
	_, err = client.ActiveAlerts(context.Background(), "FLZ151", "FL")
	require.NoError(t, err)
	assert.Equal(t, "area=FL", query)
}

func TestGetJSON_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Points(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding provider response")
}
