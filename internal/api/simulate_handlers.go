package api

import (
	"context"
	"net/http"
	"time"

	"github.com/imaginasean/weather-modeling/internal/forecast"
	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/internal/pde"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// Advection1DResponse wraps a 1-D run with the wind that drove it.
type Advection1DResponse struct {
	Wind   pde.Wind      `json:"wind"`
	Result *pde.Result1D `json:"result"`
}

// Advection2DResponse wraps a 2-D run with the wind that drove it.
type Advection2DResponse struct {
	Wind   pde.Wind      `json:"wind"`
	Result *pde.Result2D `json:"result"`
}

// SimulateAdvection1D runs the 1-D advection solver with an advection speed
// scaled from the real wind at the requested location.
func (h *Handler) SimulateAdvection1D(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}

	nx, ok := queryInt(r, "nx", 100)
	if !ok {
		http.Error(w, "Invalid nx parameter", http.StatusBadRequest)
		return
	}
	steps, ok := queryInt(r, "steps", 200)
	if !ok {
		http.Error(w, "Invalid steps parameter", http.StatusBadRequest)
		return
	}
	interval, ok := queryInt(r, "interval", 10)
	if !ok {
		http.Error(w, "Invalid interval parameter", http.StatusBadRequest)
		return
	}
	if nx > h.config.Simulate.MaxGridPoints || steps > h.config.Simulate.MaxSteps {
		http.Error(w, "Requested run exceeds configured solver limits", http.StatusBadRequest)
		return
	}

	wind := h.resolveWind(r.Context(), lat, lon)

	start := time.Now()
	result, err := pde.SolveAdvection1D(pde.Params1D{
		NX:             nx,
		C:              pde.SpeedFromWind(wind.SpeedMPH),
		NumSteps:       steps,
		OutputInterval: interval,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.observeSimulation("advection_1d", time.Since(start))

	WriteJSON(w, http.StatusOK, &Advection1DResponse{Wind: wind, Result: result})
}

// SimulateAdvection2D runs the 2-D advection-diffusion solver with the grid
// velocity derived from the real wind at the requested location.
func (h *Handler) SimulateAdvection2D(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}

	nx, ok := queryInt(r, "nx", 80)
	if !ok {
		http.Error(w, "Invalid nx parameter", http.StatusBadRequest)
		return
	}
	ny, ok := queryInt(r, "ny", 80)
	if !ok {
		http.Error(w, "Invalid ny parameter", http.StatusBadRequest)
		return
	}
	steps, ok := queryInt(r, "steps", 400)
	if !ok {
		http.Error(w, "Invalid steps parameter", http.StatusBadRequest)
		return
	}
	interval, ok := queryInt(r, "interval", 10)
	if !ok {
		http.Error(w, "Invalid interval parameter", http.StatusBadRequest)
		return
	}
	diffusion, ok := queryFloat(r, "diffusion", 0.001)
	if !ok {
		http.Error(w, "Invalid diffusion parameter", http.StatusBadRequest)
		return
	}
	if nx*ny > h.config.Simulate.MaxGridPoints || steps > h.config.Simulate.MaxSteps {
		http.Error(w, "Requested run exceeds configured solver limits", http.StatusBadRequest)
		return
	}

	wind := h.resolveWind(r.Context(), lat, lon)
	cx, cy := pde.VelocityFromWind(wind)

	start := time.Now()
	result, err := pde.SolveAdvectionDiffusion2D(pde.Params2D{
		NX:             nx,
		NY:             ny,
		CX:             cx,
		CY:             cy,
		Diffusion:      diffusion,
		NumSteps:       steps,
		OutputInterval: interval,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.observeSimulation("advection_2d", time.Since(start))

	WriteJSON(w, http.StatusOK, &Advection2DResponse{Wind: wind, Result: result})
}

// resolveWind finds the real wind driving a simulation: the latest station
// observation when it carries both speed and direction, otherwise the
// step-0 gridded wind, otherwise the neutral default. Upstream failures
// degrade to the default rather than failing the run.
func (h *Handler) resolveWind(ctx context.Context, lat, lon float64) pde.Wind {
	points, err := h.nwsClient.Points(ctx, lat, lon)
	if err != nil {
		h.logger.Warn("Failed to resolve grid for simulation wind", logger.Error(err))
		return pde.SelectWind(nil, nil)
	}

	var obsWind *pde.Wind
	if stations, err := h.nwsClient.Stations(ctx, points.Properties.ObservationStations); err == nil && len(stations.Features) > 0 {
		stationID := stations.Features[0].Properties.StationIdentifier
		if latest, err := h.nwsClient.LatestObservation(ctx, stationID); err == nil {
			obs := nws.ToObservation(latest)
			if obs != nil && obs.WindMPH != nil && obs.WindDirDeg != nil {
				obsWind = &pde.Wind{SpeedMPH: *obs.WindMPH, DirFromDeg: *obs.WindDirDeg}
			}
		}
	}

	var griddedWind *pde.Wind
	if obsWind == nil {
		if gridpoint, err := h.nwsClient.Gridpoint(ctx, points.Properties.GridID, points.Properties.GridX, points.Properties.GridY); err == nil {
			gridded := nws.ToGridded(gridpoint)
			if len(gridded.WindSpeed) > 0 && len(gridded.WindDirection) > 0 {
				griddedWind = &pde.Wind{
					SpeedMPH:   forecast.GriddedWindSpeedMPH(gridded.WindSpeed[0].Value, gridded.WindSpeedUnit),
					DirFromDeg: gridded.WindDirection[0].Value,
				}
			}
		}
	}

	return pde.SelectWind(obsWind, griddedWind)
}

func (h *Handler) observeSimulation(kind string, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.SimulationRuns.WithLabelValues(kind).Inc()
	h.metrics.SimulationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}
