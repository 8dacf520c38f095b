package nws

import (
	"strings"

	"github.com/imaginasean/weather-modeling/internal/forecast"
)

// ToPeriods maps hourly forecast periods to the normalizer's input shape.
// NWS hourly temperatures are already in the display unit (°F).
func ToPeriods(resp *ForecastResponse) []forecast.Period {
	if resp == nil {
		return nil
	}
	periods := make([]forecast.Period, 0, len(resp.Properties.Periods))
	for _, p := range resp.Properties.Periods {
		period := forecast.Period{
			StartTime: p.StartTime,
			TempF:     p.Temperature,
			WindSpeed: p.WindSpeed,
			WindDir:   p.WindDirection,
		}
		if p.ProbabilityOfPrecipitation.Value != nil {
			v := *p.ProbabilityOfPrecipitation.Value
			period.PrecipPct = &v
		}
		periods = append(periods, period)
	}
	return periods
}

// ToGridded maps a gridpoint payload to the normalizer's sparse series.
// An absent gridpoint (nil resp) degrades to empty series.
func ToGridded(resp *GridpointResponse) forecast.GriddedSeries {
	if resp == nil {
		return forecast.GriddedSeries{}
	}
	return forecast.GriddedSeries{
		Temperature:   toValues(resp.Properties.Temperature),
		WindSpeed:     toValues(resp.Properties.WindSpeed),
		WindDirection: toValues(resp.Properties.WindDirection),
		WindSpeedUnit: resp.Properties.WindSpeed.UOM,
	}
}

func toValues(series GridpointSeries) []forecast.GriddedValue {
	if len(series.Values) == 0 {
		return nil
	}
	out := make([]forecast.GriddedValue, 0, len(series.Values))
	for _, v := range series.Values {
		if v.Value == nil {
			continue
		}
		out = append(out, forecast.GriddedValue{ValidTime: v.ValidTime, Value: *v.Value})
	}
	return out
}

// ToObservation converts a latest-observation payload to display units using
// the provider's explicit unit codes. Quantities the station did not measure
// stay nil. Returns nil for a nil payload.
func ToObservation(resp *ObservationResponse) *forecast.Observation {
	if resp == nil {
		return nil
	}
	obs := &forecast.Observation{Time: resp.Properties.Timestamp}
	obs.TempF = toFahrenheit(resp.Properties.Temperature)
	obs.DewpointF = toFahrenheit(resp.Properties.Dewpoint)
	obs.WindMPH = toMPH(resp.Properties.WindSpeed)
	if v := resp.Properties.WindDirection.Value; v != nil {
		d := *v
		obs.WindDirDeg = &d
	}
	return obs
}

func toFahrenheit(qv QuantitativeValue) *float64 {
	if qv.Value == nil {
		return nil
	}
	v := *qv.Value
	if strings.Contains(qv.UnitCode, "degC") {
		v = forecast.CelsiusToFahrenheit(v)
	}
	return &v
}

func toMPH(qv QuantitativeValue) *float64 {
	if qv.Value == nil {
		return nil
	}
	v := *qv.Value
	switch {
	case strings.Contains(qv.UnitCode, "km_h"):
		v *= forecast.KmhToMPH
	case strings.Contains(qv.UnitCode, "m_s"):
		v *= forecast.MsToMPH
	}
	return &v
}
