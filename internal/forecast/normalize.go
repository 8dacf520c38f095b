package forecast

import (
	"strings"
	"time"

	"github.com/imaginasean/weather-modeling/internal/angles"
)

// Normalize aligns a period forecast with up to three sparse gridded series
// and produces one ordered, unit-consistent step sequence.
//
// Alignment is by hour: every timestamp is truncated to hour granularity and
// matched across the two sources. Where a gridded value exists for a period's
// hour it overrides the period value (gridded data is treated as higher
// fidelity); otherwise the period's own value is used. The output is capped
// at horizon steps (DefaultHorizonSteps when horizon <= 0).
//
// Missing gridded series are not an error; normalization degrades to
// period-only data. Missing precipitation probability defaults to 0.
func Normalize(periods []Period, gridded GriddedSeries, horizon int) []RawStep {
	if horizon <= 0 {
		horizon = DefaultHorizonSteps
	}

	tempByHour := indexByHour(gridded.Temperature)
	speedByHour := indexByHour(gridded.WindSpeed)
	dirByHour := indexByHour(gridded.WindDirection)

	steps := make([]RawStep, 0, min(horizon, len(periods)))
	var lastHour time.Time

	for _, p := range periods {
		if len(steps) >= horizon {
			break
		}
		// Keys must agree with indexByHour: map lookups on time.Time compare
		// the location too, and period start times carry local offsets.
		hour := p.StartTime.UTC().Truncate(time.Hour)
		// Sequences must be strictly increasing with no duplicate timestamps.
		if len(steps) > 0 && !hour.After(lastHour) {
			continue
		}

		step := RawStep{Time: hour, TempF: p.TempF}

		if v, ok := tempByHour[hour]; ok {
			step.TempF = CelsiusToFahrenheit(v)
		}

		if v, ok := speedByHour[hour]; ok {
			step.WindMPH = GriddedWindSpeedMPH(v, gridded.WindSpeedUnit)
		} else if v, ok := parseWindSpeed(p.WindSpeed); ok {
			step.WindMPH = v
		}

		if v, ok := dirByHour[hour]; ok {
			step.WindDirDeg = angles.Normalize(v)
		} else if v, ok := parseWindDirection(p.WindDir); ok {
			step.WindDirDeg = v
		}

		if p.PrecipPct != nil {
			step.PrecipPct = clamp(*p.PrecipPct, 0, 100)
		}

		steps = append(steps, step)
		lastHour = hour
	}

	return steps
}

// indexByHour maps a sparse gridded series to hour-truncated keys. The start
// of each valid-time interval is the text before the first "/" separator.
func indexByHour(values []GriddedValue) map[time.Time]float64 {
	if len(values) == 0 {
		return nil
	}
	out := make(map[time.Time]float64, len(values))
	for _, v := range values {
		start := v.ValidTime
		if i := strings.Index(start, "/"); i >= 0 {
			start = start[:i]
		}
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			continue
		}
		hour := t.UTC().Truncate(time.Hour)
		if _, exists := out[hour]; !exists {
			out[hour] = v.Value
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
