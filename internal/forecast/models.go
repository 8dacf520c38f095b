package forecast

import "time"

// DefaultHorizonSteps is the fixed forecast horizon: normalized sequences are
// capped at 48 hourly steps.
const DefaultHorizonSteps = 48

// RawStep is one aligned, unit-consistent forecast hour. Temperatures are in
// display degrees Fahrenheit, wind speeds in mph, directions in compass
// degrees ("from" convention, [0,360)), precipitation probability in percent.
type RawStep struct {
	Time       time.Time `json:"time"`
	TempF      float64   `json:"temp_f"`
	WindMPH    float64   `json:"wind_mph"`
	WindDirDeg float64   `json:"wind_dir_deg"`
	PrecipPct  float64   `json:"precip_pct"`
}

// Period is a single human-authored forecast period as supplied by the
// data-fetch collaborator. Wind speed and direction arrive as free text
// ("10 mph", "NE"); temperature is already in the display unit.
type Period struct {
	StartTime time.Time
	TempF     float64
	WindSpeed string
	WindDir   string
	PrecipPct *float64
}

// GriddedValue is one entry of a sparse model-derived time series, keyed by a
// valid-time interval string (e.g. "2026-08-29T15:00:00+00:00/PT1H").
type GriddedValue struct {
	ValidTime string
	Value     float64
}

// GriddedSeries carries the three independent gridded series the normalizer
// consumes. Temperatures are in Celsius, wind directions in degrees. Wind
// speed units follow WindSpeedUnit when the upstream supplies a unit code;
// otherwise a magnitude heuristic is used (see GriddedWindSpeedMPH).
type GriddedSeries struct {
	Temperature   []GriddedValue
	WindSpeed     []GriddedValue
	WindDirection []GriddedValue
	WindSpeedUnit string
}

// Observation is a single-point ground-truth observation in display units.
// Absent quantities are nil.
type Observation struct {
	Time       time.Time `json:"time"`
	TempF      *float64  `json:"temp_f,omitempty"`
	DewpointF  *float64  `json:"dewpoint_f,omitempty"`
	WindMPH    *float64  `json:"wind_mph,omitempty"`
	WindDirDeg *float64  `json:"wind_dir_deg,omitempty"`
	PrecipPct  *float64  `json:"precip_pct,omitempty"`
}

// Usable reports whether the observation carries at least one quantity the
// bias and blend transforms can anchor on.
func (o *Observation) Usable() bool {
	if o == nil {
		return false
	}
	return o.TempF != nil || o.WindMPH != nil || o.WindDirDeg != nil
}

// Bias is the observation-minus-raw difference evaluated at step 0. Deltas
// for quantities the observation does not supply are 0 so the decay formula
// stays well-defined.
type Bias struct {
	TempDelta      float64 `json:"temp_delta"`
	WindSpeedDelta float64 `json:"wind_speed_delta"`
	WindDirDelta   float64 `json:"wind_dir_delta"` // signed, -180..180
	PrecipDelta    float64 `json:"precip_delta"`
}

// Band is a {low, mid, high} wrapper around one scalar.
type Band struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// BandStep is an uncertainty-banded forecast step.
type BandStep struct {
	Time    time.Time `json:"time"`
	Temp    Band      `json:"temp_f"`
	Wind    Band      `json:"wind_mph"`
	WindDir Band      `json:"wind_dir_deg"`
	Precip  Band      `json:"precip_pct"`
}

// HalfWidths are the per-quantity band half-widths in display units.
type HalfWidths struct {
	TempF      float64 `toml:"temp_f"`
	WindMPH    float64 `toml:"wind_mph"`
	WindDirDeg float64 `toml:"wind_dir_deg"`
	PrecipPct  float64 `toml:"precip_pct"`
}

// DefaultHalfWidths returns the stock band half-widths: temperature ±2°F,
// wind ±3 mph, direction ±15°, precipitation ±10 points.
func DefaultHalfWidths() HalfWidths {
	return HalfWidths{
		TempF:      2,
		WindMPH:    3,
		WindDirDeg: 15,
		PrecipPct:  10,
	}
}

// AllowedTaus are the permitted bias decay constants in hours.
var AllowedTaus = []float64{6, 12, 24}
