package api

import (
	"net/http"

	"github.com/imaginasean/weather-modeling/internal/derived"
	"github.com/imaginasean/weather-modeling/internal/forecast"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// GetDerivedForecast runs the full derivation pipeline for the requested
// location: grid resolution, hourly forecast + gridded series + latest
// observation fetch, series normalization, then bias adjustment,
// persistence blending, and banding.
func (h *Handler) GetDerivedForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}

	tau, ok := queryFloat(r, "tau", 0)
	if !ok || (tau != 0 && !allowedTau(tau)) {
		http.Error(w, "Invalid tau parameter", http.StatusBadRequest)
		return
	}

	result, err := h.derivedService.Derive(r.Context(), derived.Request{
		Latitude:  lat,
		Longitude: lon,
		Station:   r.URL.Query().Get("station"),
		Tau:       tau,
	})
	if err != nil {
		h.logger.Error("Derived forecast failed", logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func allowedTau(tau float64) bool {
	for _, t := range forecast.AllowedTaus {
		if tau == t {
			return true
		}
	}
	return false
}

// GetLatestDerivedForecast serves the cached home-station forecast kept warm
// by the background refresher.
func (h *Handler) GetLatestDerivedForecast(w http.ResponseWriter, r *http.Request) {
	result := h.derivedService.Latest()
	if result == nil {
		http.Error(w, "Home station forecast not ready yet", http.StatusServiceUnavailable)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
