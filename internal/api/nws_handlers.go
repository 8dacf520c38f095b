package api

import (
	"fmt"
	"net/http"

	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// The proxy routes pass provider payloads through unmodified so a front-end
// can consume the upstream schema directly while benefiting from the shared
// cache and User-Agent handling.

// ProxyPoints proxies the grid metadata for a lat/lon.
func (h *Handler) ProxyPoints(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}
	raw, err := h.nwsClient.GetRaw(r.Context(), fmt.Sprintf("/points/%.4f,%.4f", lat, lon))
	h.writeRaw(w, raw, err)
}

// ProxyForecast proxies the zone (12-hour period) forecast for a lat/lon.
func (h *Handler) ProxyForecast(w http.ResponseWriter, r *http.Request) {
	h.proxyPointsURL(w, r, func(p *nws.PointsResponse) string { return p.Properties.Forecast })
}

// ProxyHourlyForecast proxies the hourly forecast for a lat/lon.
func (h *Handler) ProxyHourlyForecast(w http.ResponseWriter, r *http.Request) {
	h.proxyPointsURL(w, r, func(p *nws.PointsResponse) string { return p.Properties.ForecastHourly })
}

// ProxyGridpoint proxies the raw gridded data for a lat/lon.
func (h *Handler) ProxyGridpoint(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}
	points, err := h.nwsClient.Points(r.Context(), lat, lon)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	raw, err := h.nwsClient.GetRaw(r.Context(), fmt.Sprintf("/gridpoints/%s/%d,%d",
		points.Properties.GridID, points.Properties.GridX, points.Properties.GridY))
	h.writeRaw(w, raw, err)
}

// ProxyObservation proxies the latest observation for a station (explicit
// ?station= or the first station of the grid serving the lat/lon).
func (h *Handler) ProxyObservation(w http.ResponseWriter, r *http.Request) {
	stationID := r.URL.Query().Get("station")
	if stationID == "" {
		lat, lon, err := h.coordinates(r)
		if err != nil {
			http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
			return
		}
		points, err := h.nwsClient.Points(r.Context(), lat, lon)
		if err != nil {
			h.upstreamError(w, err)
			return
		}
		stations, err := h.nwsClient.Stations(r.Context(), points.Properties.ObservationStations)
		if err != nil || len(stations.Features) == 0 {
			http.Error(w, "No observation stations for location", http.StatusNotFound)
			return
		}
		stationID = stations.Features[0].Properties.StationIdentifier
	}
	raw, err := h.nwsClient.GetRaw(r.Context(), fmt.Sprintf("/stations/%s/observations/latest", stationID))
	h.writeRaw(w, raw, err)
}

// ProxyAlerts proxies active alerts for a zone or area.
func (h *Handler) ProxyAlerts(w http.ResponseWriter, r *http.Request) {
	zone := r.URL.Query().Get("zone")
	area := r.URL.Query().Get("area")
	if zone == "" && area == "" {
		http.Error(w, "Either zone or area is required", http.StatusBadRequest)
		return
	}
	raw, err := h.nwsClient.ActiveAlerts(r.Context(), zone, area)
	h.writeRaw(w, raw, err)
}

// proxyPointsURL resolves the grid for a lat/lon, then proxies one of its
// follow-up URLs.
func (h *Handler) proxyPointsURL(w http.ResponseWriter, r *http.Request, pick func(*nws.PointsResponse) string) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}
	points, err := h.nwsClient.Points(r.Context(), lat, lon)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	raw, err := h.nwsClient.GetRaw(r.Context(), pick(points))
	h.writeRaw(w, raw, err)
}

func (h *Handler) writeRaw(w http.ResponseWriter, raw nws.Raw, err error) {
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (h *Handler) upstreamError(w http.ResponseWriter, err error) {
	h.logger.Error("Upstream request failed", logger.Error(err))
	http.Error(w, "Upstream request failed", http.StatusBadGateway)
}
