package api

import (
	"context"
	"fmt"
	"time"

	"github.com/imaginasean/weather-modeling/internal/pde"
	"github.com/imaginasean/weather-modeling/internal/websocket"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// streamTimeout bounds one streamed solver run, including the upstream wind
// lookup.
const streamTimeout = 30 * time.Second

// HandleMessage dispatches incoming WebSocket messages. A run_request kicks
// off a solver run whose snapshots are streamed back to the requesting
// client one message at a time.
func (h *Handler) HandleMessage(client *websocket.Client, messageType string, data map[string]any) error {
	switch messageType {
	case websocket.MessageTypeRunRequest:
		go h.streamRun(client, data)
		return nil
	default:
		return fmt.Errorf("unknown message type: %s", messageType)
	}
}

// streamRun executes a requested solver run and streams its snapshots to the
// client. Errors are reported as run_error messages rather than closing the
// connection.
func (h *Handler) streamRun(client *websocket.Client, data map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), streamTimeout)
	defer cancel()

	kind, _ := data["kind"].(string)
	lat := numberOr(data, "lat", h.config.Station.Latitude)
	lon := numberOr(data, "lon", h.config.Station.Longitude)
	steps := int(numberOr(data, "steps", 200))
	interval := int(numberOr(data, "interval", 10))

	wind := h.resolveWind(ctx, lat, lon)

	var (
		series []pde.Snapshot
		meta   map[string]any
		err    error
	)

	start := time.Now()
	switch kind {
	case "advection_1d", "":
		nx := int(numberOr(data, "nx", 100))
		if nx > h.config.Simulate.MaxGridPoints || steps > h.config.Simulate.MaxSteps {
			h.sendRunError(client, "requested run exceeds configured solver limits")
			return
		}
		var result *pde.Result1D
		result, err = pde.SolveAdvection1D(pde.Params1D{
			NX:             nx,
			C:              pde.SpeedFromWind(wind.SpeedMPH),
			NumSteps:       steps,
			OutputInterval: interval,
		})
		if err == nil {
			kind = "advection_1d"
			series = result.Series
			meta = map[string]any{
				"kind": kind, "wind": wind,
				"nx": nx, "c": result.C, "dt": result.DT, "dx": result.DX,
				"num_steps": result.NumSteps, "snapshots": len(series),
			}
		}
	case "advection_2d":
		nx := int(numberOr(data, "nx", 80))
		ny := int(numberOr(data, "ny", 80))
		if nx*ny > h.config.Simulate.MaxGridPoints || steps > h.config.Simulate.MaxSteps {
			h.sendRunError(client, "requested run exceeds configured solver limits")
			return
		}
		cx, cy := pde.VelocityFromWind(wind)
		var result *pde.Result2D
		result, err = pde.SolveAdvectionDiffusion2D(pde.Params2D{
			NX:             nx,
			NY:             ny,
			CX:             cx,
			CY:             cy,
			Diffusion:      numberOr(data, "diffusion", 0.001),
			NumSteps:       steps,
			OutputInterval: interval,
		})
		if err == nil {
			series = result.Series
			meta = map[string]any{
				"kind": kind, "wind": wind,
				"nx": nx, "ny": ny, "cx": result.CX, "cy": result.CY,
				"diffusion": result.Diffusion, "dt": result.DT,
				"num_steps": result.NumSteps, "snapshots": len(series),
			}
		}
	default:
		h.sendRunError(client, fmt.Sprintf("unknown run kind: %s", kind))
		return
	}

	if err != nil {
		h.sendRunError(client, err.Error())
		return
	}
	h.observeSimulation(kind, time.Since(start))

	client.SendMessage(&websocket.Message{
		Type: websocket.MessageTypeRunStarted,
		Data: meta,
	})

	for _, snap := range series {
		sent := client.SendMessage(&websocket.Message{
			Type: websocket.MessageTypeRunSnapshot,
			Data: map[string]any{"step": snap.Step, "u": snap.U},
		})
		if !sent {
			h.logger.Debug("Dropped simulation stream, client gone",
				logger.String("kind", kind))
			return
		}
	}

	client.SendMessage(&websocket.Message{
		Type: websocket.MessageTypeRunComplete,
		Data: map[string]any{"kind": kind, "snapshots": len(series)},
	})
}

func (h *Handler) sendRunError(client *websocket.Client, msg string) {
	client.SendMessage(&websocket.Message{
		Type: websocket.MessageTypeRunError,
		Data: map[string]any{"error": msg},
	})
}

// numberOr reads a numeric field from a decoded JSON object; absent or
// non-numeric fields yield the default.
func numberOr(data map[string]any, key string, def float64) float64 {
	if v, ok := data[key].(float64); ok {
		return v
	}
	return def
}
