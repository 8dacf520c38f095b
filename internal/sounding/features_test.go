package sounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(p, t, td float64) ProfileRow {
	return ProfileRow{PressureHPa: p, TempC: t, DewpointC: td}
}

func TestAnalyzeProfile_RejectsNonDecreasingPressure(t *testing.T) {
	rows := []ProfileRow{
		row(1000, 25, 20),
		row(900, 18, 15),
		row(900, 17, 14),
	}

	_, err := AnalyzeProfile(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly decreasing")
}

func TestAnalyzeProfile_EmptyProfile(t *testing.T) {
	feats, err := AnalyzeProfile(nil)
	require.NoError(t, err)
	assert.Nil(t, feats.FreezingLevelHPa)
	assert.Nil(t, feats.InversionHPa)
	assert.Empty(t, feats.DryLayers)
}

func TestAnalyzeProfile_FreezingLevelInterpolated(t *testing.T) {
	// Crossing between 950 hPa at +2 C and 900 hPa at -3 C.
	// frac = 2/5, so p = 950 + 0.4*(900-950) = 930.
	rows := []ProfileRow{
		row(1000, 10, 8),
		row(950, 2, 1),
		row(900, -3, -5),
		row(850, -8, -12),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.NotNil(t, feats.FreezingLevelHPa)
	assert.InDelta(t, 930.0, *feats.FreezingLevelHPa, 1e-9)
	assert.False(t, feats.FreezingLevelEstim)
}

func TestAnalyzeProfile_FreezingLevelEstimated(t *testing.T) {
	// No sign crossing, but the topmost level sits in the 0..5 C band.
	rows := []ProfileRow{
		row(1000, 20, 15),
		row(900, 10, 6),
		row(800, 3, -2),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.NotNil(t, feats.FreezingLevelHPa)
	assert.InDelta(t, 800.0, *feats.FreezingLevelHPa, 1e-9)
	assert.True(t, feats.FreezingLevelEstim)
}

func TestAnalyzeProfile_NoFreezingLevel(t *testing.T) {
	rows := []ProfileRow{
		row(1000, 28, 22),
		row(900, 20, 15),
		row(800, 12, 8),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	assert.Nil(t, feats.FreezingLevelHPa)
	assert.False(t, feats.FreezingLevelEstim)
}

func TestAnalyzeProfile_Inversion(t *testing.T) {
	// Temperature rises from 900 to 850 hPa, inside the reporting band.
	rows := []ProfileRow{
		row(1000, 22, 18),
		row(900, 14, 10),
		row(850, 16, 4),
		row(700, 6, -10),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.NotNil(t, feats.InversionHPa)
	assert.InDelta(t, 900.0, *feats.InversionHPa, 1e-9)
}

func TestAnalyzeProfile_InversionBelowBandSkipped(t *testing.T) {
	// Surface inversion at p > 950 hPa is outside the reporting band.
	rows := []ProfileRow{
		row(1000, 10, 8),
		row(980, 12, 7),
		row(900, 6, 2),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	assert.Nil(t, feats.InversionHPa)
}

func TestAnalyzeProfile_InversionAboveBandSkipped(t *testing.T) {
	// Stratospheric warming ends below 400 hPa so the pair is ignored.
	rows := []ProfileRow{
		row(1000, 25, 20),
		row(700, 8, 2),
		row(450, -20, -30),
		row(300, -18, -40),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	assert.Nil(t, feats.InversionHPa)
}

func TestAnalyzeProfile_FirstInversionReported(t *testing.T) {
	rows := []ProfileRow{
		row(940, 14, 10),
		row(900, 15, 8),
		row(800, 10, 3),
		row(700, 11, -5),
		row(500, -5, -20),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.NotNil(t, feats.InversionHPa)
	assert.InDelta(t, 940.0, *feats.InversionHPa, 1e-9)
}

func TestAnalyzeProfile_DryLayer(t *testing.T) {
	// Spreads: 3, 9, 10, 2. The middle run of two levels qualifies.
	rows := []ProfileRow{
		row(1000, 25, 22),
		row(900, 18, 9),
		row(800, 12, 2),
		row(700, 4, 2),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.Len(t, feats.DryLayers, 1)
	layer := feats.DryLayers[0]
	assert.InDelta(t, 900.0, layer.TopHPa, 1e-9)
	assert.InDelta(t, 800.0, layer.BottomHPa, 1e-9)
	assert.InDelta(t, 9.5, layer.AvgSpreadC, 1e-9)
}

func TestAnalyzeProfile_SingleDryLevelRejected(t *testing.T) {
	// An isolated dry level does not form a layer.
	rows := []ProfileRow{
		row(1000, 25, 22),
		row(900, 18, 8),
		row(800, 12, 10),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	assert.Empty(t, feats.DryLayers)
}

func TestAnalyzeProfile_DryLayerAtProfileTop(t *testing.T) {
	// A run extending to the last level is still flushed.
	rows := []ProfileRow{
		row(1000, 25, 23),
		row(900, 18, 15),
		row(800, 12, 0),
		row(700, 4, -8),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.Len(t, feats.DryLayers, 1)
	layer := feats.DryLayers[0]
	assert.InDelta(t, 800.0, layer.TopHPa, 1e-9)
	assert.InDelta(t, 700.0, layer.BottomHPa, 1e-9)
	assert.InDelta(t, 12.0, layer.AvgSpreadC, 1e-9)
}

func TestAnalyzeProfile_MultipleDryLayers(t *testing.T) {
	rows := []ProfileRow{
		row(1000, 25, 15),
		row(950, 20, 11),
		row(900, 17, 15),
		row(850, 14, 4),
		row(800, 10, 1),
	}

	feats, err := AnalyzeProfile(rows)
	require.NoError(t, err)
	require.Len(t, feats.DryLayers, 2)
	assert.InDelta(t, 1000.0, feats.DryLayers[0].TopHPa, 1e-9)
	assert.InDelta(t, 950.0, feats.DryLayers[0].BottomHPa, 1e-9)
	assert.InDelta(t, 850.0, feats.DryLayers[1].TopHPa, 1e-9)
	assert.InDelta(t, 800.0, feats.DryLayers[1].BottomHPa, 1e-9)
}
