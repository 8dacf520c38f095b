package pde

import (
	"math"

	"github.com/imaginasean/weather-modeling/internal/angles"
)

// Wind is the real-wind input to the solvers: a speed in display units (mph)
// and a meteorological "from" direction in degrees.
type Wind struct {
	SpeedMPH   float64 `json:"speed_mph"`
	DirFromDeg float64 `json:"dir_from_deg"`
}

// Real wind speeds are scaled into a demonstration-safe advection speed by a
// fixed reference divisor, then clamped so the schemes stay far from the
// stability limits.
const (
	windSpeedDivisor  = 5.0
	minAdvectionSpeed = 0.1
	maxAdvectionSpeed = 2.0

	// Neutral defaults when neither an observation nor gridded data supplies
	// a wind: a light westerly.
	defaultWindSpeedMPH = 5.0
	defaultWindDirDeg   = 270.0
)

// SelectWind applies the source priority rule: the observation wind when
// present, otherwise the gridded step-0 wind, otherwise a neutral default.
func SelectWind(obs, gridded *Wind) Wind {
	if obs != nil {
		return *obs
	}
	if gridded != nil {
		return *gridded
	}
	return Wind{SpeedMPH: defaultWindSpeedMPH, DirFromDeg: defaultWindDirDeg}
}

// SpeedFromWind scales a real wind speed to a 1-D advection speed:
// clamp(speed/5, 0.1, 2.0).
func SpeedFromWind(speedMPH float64) float64 {
	c := math.Abs(speedMPH) / windSpeedDivisor
	return math.Min(math.Max(c, minAdvectionSpeed), maxAdvectionSpeed)
}

// VelocityFromWind converts a real wind to a 2-D grid velocity. The
// meteorological "from" direction becomes a Cartesian blow-to direction, and
// the y component is negated because grid rows increase downward while north
// is up.
func VelocityFromWind(w Wind) (cx, cy float64) {
	speed := SpeedFromWind(w.SpeedMPH)
	blowTo := angles.BlowToFrom(w.DirFromDeg) * math.Pi / 180
	cx = speed * math.Sin(blowTo)
	cy = -speed * math.Cos(blowTo)
	return cx, cy
}
