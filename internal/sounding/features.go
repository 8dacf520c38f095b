package sounding

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Detection thresholds.
const (
	// Inversions are only searched within this pressure band; surface and
	// stratospheric inversions are expected and not reported.
	inversionBandLowHPa  = 400.0
	inversionBandHighHPa = 950.0

	// Dry layers need at least this temperature-dewpoint spread over at
	// least two consecutive levels.
	drySpreadThresholdC = 8.0
	dryLayerMinLevels   = 2

	// Near-surface cold case: when no 0°C crossing exists but the topmost
	// level is still barely above freezing, its pressure is reported as an
	// approximate freezing level.
	nearFreezingMaxC = 5.0
)

// AnalyzeProfile derives the structural features of a pressure-ordered
// temperature/dewpoint profile: freezing level, first temperature inversion,
// and dry layers. Each detector is an independent single pass; a profile
// without a qualifying feature yields "no finding", not an error.
//
// The profile must be strictly decreasing in pressure (surface first);
// anything else is a caller error and is rejected.
func AnalyzeProfile(rows []ProfileRow) (*Features, error) {
	for i := 1; i < len(rows); i++ {
		if rows[i].PressureHPa >= rows[i-1].PressureHPa {
			return nil, fmt.Errorf("profile pressures must be strictly decreasing: level %d (%.1f hPa) >= level %d (%.1f hPa)",
				i, rows[i].PressureHPa, i-1, rows[i-1].PressureHPa)
		}
	}

	f := &Features{}
	f.FreezingLevelHPa, f.FreezingLevelEstim = freezingLevel(rows)
	f.InversionHPa = firstInversion(rows)
	f.DryLayers = dryLayers(rows)
	return f, nil
}

// freezingLevel finds the first adjacent pair crossing 0°C from above and
// linearly interpolates the crossing pressure. If no crossing exists but the
// topmost level is between 0 and 5°C, that level's pressure is returned as
// an approximate (near-surface cold) freezing level.
func freezingLevel(rows []ProfileRow) (*float64, bool) {
	for i := 0; i+1 < len(rows); i++ {
		if rows[i].TempC >= 0 && rows[i+1].TempC < 0 {
			span := rows[i].TempC - rows[i+1].TempC
			// Cannot be zero given the crossing condition, but guard anyway.
			if span == 0 {
				p := rows[i].PressureHPa
				return &p, false
			}
			frac := rows[i].TempC / span
			p := rows[i].PressureHPa + frac*(rows[i+1].PressureHPa-rows[i].PressureHPa)
			return &p, false
		}
	}
	if n := len(rows); n > 0 {
		top := rows[n-1]
		if top.TempC >= 0 && top.TempC <= nearFreezingMaxC {
			p := top.PressureHPa
			return &p, true
		}
	}
	return nil, false
}

// firstInversion reports the pressure of the first level within the
// [400, 950] hPa band whose next level is warmer (temperature increasing
// with height). Only the first occurrence is reported.
func firstInversion(rows []ProfileRow) *float64 {
	for i := 0; i+1 < len(rows); i++ {
		p, pNext := rows[i].PressureHPa, rows[i+1].PressureHPa
		if p > inversionBandHighHPa || pNext < inversionBandLowHPa {
			continue
		}
		if rows[i+1].TempC > rows[i].TempC {
			out := p
			return &out
		}
	}
	return nil
}

// dryLayers finds maximal contiguous runs of levels with spread T-Td >= 8
// and length >= 2.
func dryLayers(rows []ProfileRow) []DryLayer {
	var layers []DryLayer
	runStart := -1

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		if end-runStart >= dryLayerMinLevels {
			spreads := make([]float64, 0, end-runStart)
			for i := runStart; i < end; i++ {
				spreads = append(spreads, rows[i].TempC-rows[i].DewpointC)
			}
			layers = append(layers, DryLayer{
				TopHPa:     rows[runStart].PressureHPa,
				BottomHPa:  rows[end-1].PressureHPa,
				AvgSpreadC: stat.Mean(spreads, nil),
			})
		}
		runStart = -1
	}

	for i, r := range rows {
		if r.TempC-r.DewpointC >= drySpreadThresholdC {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(rows))

	return layers
}
