package forecast

import (
	"fmt"
	"math"

	"github.com/imaginasean/weather-modeling/internal/angles"
)

// BiasAtZero computes the observation-minus-raw difference at step 0.
// Returns nil when the raw sequence is empty or the observation carries no
// usable quantity. Deltas for quantities the observation lacks are 0, keeping
// the decay formula well-defined for the others.
func BiasAtZero(obs *Observation, raw []RawStep) *Bias {
	if len(raw) == 0 || !obs.Usable() {
		return nil
	}

	b := &Bias{}
	r0 := raw[0]
	if obs.TempF != nil {
		b.TempDelta = *obs.TempF - r0.TempF
	}
	if obs.WindMPH != nil {
		b.WindSpeedDelta = *obs.WindMPH - r0.WindMPH
	}
	if obs.WindDirDeg != nil {
		b.WindDirDelta = angles.SignedDelta(*obs.WindDirDeg, r0.WindDirDeg)
	}
	if obs.PrecipPct != nil {
		b.PrecipDelta = *obs.PrecipPct - r0.PrecipPct
	}
	return b
}

// validateTau rejects decay constants outside the allowed set.
func validateTau(tau float64) error {
	for _, allowed := range AllowedTaus {
		if tau == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid decay constant %.0fh (allowed: 6, 12, 24)", tau)
}

// Adjusted applies a decaying bias correction: adjusted(t) = raw(t) +
// bias * exp(-t/tau), with t the step index in hours. A bias measured now
// should fade with lead time, since far out the raw forecast is the better
// estimate. A nil bias degrades to a copy of the raw sequence.
func Adjusted(raw []RawStep, bias *Bias, tau float64) ([]RawStep, error) {
	if err := validateTau(tau); err != nil {
		return nil, err
	}

	out := make([]RawStep, len(raw))
	copy(out, raw)
	if bias == nil {
		return out, nil
	}

	for t := range out {
		f := math.Exp(-float64(t) / tau)
		out[t].TempF += bias.TempDelta * f
		out[t].WindMPH += bias.WindSpeedDelta * f
		out[t].WindDirDeg = angles.Normalize(out[t].WindDirDeg + bias.WindDirDelta*f)
		out[t].PrecipPct = clamp(out[t].PrecipPct+bias.PrecipDelta*f, 0, 100)
	}
	return out, nil
}

// Blend produces the persistence blend: value(t) = obs * w + raw(t) * (1-w)
// with w = exp(-t/tau). The series starts at the observation and relaxes
// toward the raw forecast. Wind direction is blended in the circular domain
// to avoid the 0/360 discontinuity. Quantities the observation does not
// supply fall back to the raw values. Returns nil (no error) when the
// observation has no usable data.
func Blend(raw []RawStep, obs *Observation, tau float64) ([]RawStep, error) {
	if err := validateTau(tau); err != nil {
		return nil, err
	}
	if !obs.Usable() {
		return nil, nil
	}

	out := make([]RawStep, len(raw))
	copy(out, raw)

	for t := range out {
		w := math.Exp(-float64(t) / tau)
		if obs.TempF != nil {
			out[t].TempF = *obs.TempF*w + out[t].TempF*(1-w)
		}
		if obs.WindMPH != nil {
			out[t].WindMPH = *obs.WindMPH*w + out[t].WindMPH*(1-w)
		}
		if obs.WindDirDeg != nil {
			out[t].WindDirDeg = angles.Blend(*obs.WindDirDeg, out[t].WindDirDeg, w, 1-w)
		}
		if obs.PrecipPct != nil {
			out[t].PrecipPct = clamp(*obs.PrecipPct*w+out[t].PrecipPct*(1-w), 0, 100)
		}
	}
	return out, nil
}

// Bands wraps each scalar of a step sequence in {low, mid, high} using the
// given half-widths. Precipitation bounds are clamped to [0,100], wind speed
// lows to >= 0, and direction ends wrapped to [0,360).
func Bands(steps []RawStep, widths HalfWidths) []BandStep {
	out := make([]BandStep, len(steps))
	for i, s := range steps {
		out[i] = BandStep{
			Time: s.Time,
			Temp: Band{
				Low:  s.TempF - widths.TempF,
				Mid:  s.TempF,
				High: s.TempF + widths.TempF,
			},
			Wind: Band{
				Low:  math.Max(0, s.WindMPH-widths.WindMPH),
				Mid:  math.Max(0, s.WindMPH),
				High: math.Max(0, s.WindMPH+widths.WindMPH),
			},
			WindDir: Band{
				Low:  angles.Normalize(s.WindDirDeg - widths.WindDirDeg),
				Mid:  angles.Normalize(s.WindDirDeg),
				High: angles.Normalize(s.WindDirDeg + widths.WindDirDeg),
			},
			Precip: Band{
				Low:  clamp(s.PrecipPct-widths.PrecipPct, 0, 100),
				Mid:  clamp(s.PrecipPct, 0, 100),
				High: clamp(s.PrecipPct+widths.PrecipPct, 0, 100),
			},
		}
	}
	return out
}
