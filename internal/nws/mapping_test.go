package nws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPeriods(t *testing.T) {
	var resp ForecastResponse
	payload := `{"properties":{"periods":[
		{"startTime":"2026-08-29T12:00:00-04:00","temperature":88,"windSpeed":"10 mph","windDirection":"W",
		 "probabilityOfPrecipitation":{"unitCode":"wmoUnit:percent","value":40}},
		{"startTime":"2026-08-29T13:00:00-04:00","temperature":89,"windSpeed":"12 mph","windDirection":"WSW",
		 "probabilityOfPrecipitation":{"unitCode":"wmoUnit:percent","value":null}}]}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	periods := ToPeriods(&resp)

	require.Len(t, periods, 2)
	assert.InDelta(t, 88.0, periods[0].TempF, 1e-9)
	assert.Equal(t, "10 mph", periods[0].WindSpeed)
	assert.Equal(t, "W", periods[0].WindDir)
	require.NotNil(t, periods[0].PrecipPct)
	assert.InDelta(t, 40.0, *periods[0].PrecipPct, 1e-9)
	assert.Nil(t, periods[1].PrecipPct)
}

func TestToPeriods_Nil(t *testing.T) {
	assert.Nil(t, ToPeriods(nil))
}

func TestToGridded(t *testing.T) {
	var resp GridpointResponse
	payload := `{"properties":{
		"temperature":{"uom":"wmoUnit:degC","values":[
			{"validTime":"2026-08-29T16:00:00+00:00/PT2H","value":31.5},
			{"validTime":"2026-08-29T18:00:00+00:00/PT1H","value":null}]},
		"windSpeed":{"uom":"wmoUnit:km_h-1","values":[
			{"validTime":"2026-08-29T16:00:00+00:00/PT1H","value":14.8}]},
		"windDirection":{"uom":"wmoUnit:degree_(angle)","values":[
			{"validTime":"2026-08-29T16:00:00+00:00/PT6H","value":270}]}}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	gridded := ToGridded(&resp)

	// The null temperature value is dropped.
	require.Len(t, gridded.Temperature, 1)
	assert.Equal(t, "2026-08-29T16:00:00+00:00/PT2H", gridded.Temperature[0].ValidTime)
	assert.InDelta(t, 31.5, gridded.Temperature[0].Value, 1e-9)
	require.Len(t, gridded.WindSpeed, 1)
	assert.InDelta(t, 14.8, gridded.WindSpeed[0].Value, 1e-9)
	assert.Equal(t, "wmoUnit:km_h-1", gridded.WindSpeedUnit)
	require.Len(t, gridded.WindDirection, 1)
	assert.InDelta(t, 270.0, gridded.WindDirection[0].Value, 1e-9)
}

func TestToGridded_Nil(t *testing.T) {
	gridded := ToGridded(nil)
	assert.Nil(t, gridded.Temperature)
	assert.Nil(t, gridded.WindSpeed)
	assert.Nil(t, gridded.WindDirection)
}

func TestToObservation(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	now := time.Date(2026, 8, 29, 16, 53, 0, 0, time.UTC)

	var resp ObservationResponse
	resp.Properties.Timestamp = now
	resp.Properties.Temperature = QuantitativeValue{UnitCode: "wmoUnit:degC", Value: f(25)}
	resp.Properties.Dewpoint = QuantitativeValue{UnitCode: "wmoUnit:degC", Value: f(20)}
	resp.Properties.WindSpeed = QuantitativeValue{UnitCode: "wmoUnit:km_h-1", Value: f(16.0934)}
	resp.Properties.WindDirection = QuantitativeValue{UnitCode: "wmoUnit:degree_(angle)", Value: f(230)}

	obs := ToObservation(&resp)

	require.NotNil(t, obs)
	assert.Equal(t, now, obs.Time)
	require.NotNil(t, obs.TempF)
	assert.InDelta(t, 77.0, *obs.TempF, 1e-9)
	require.NotNil(t, obs.DewpointF)
	assert.InDelta(t, 68.0, *obs.DewpointF, 1e-9)
	require.NotNil(t, obs.WindMPH)
	assert.InDelta(t, 10.0, *obs.WindMPH, 0.01)
	require.NotNil(t, obs.WindDirDeg)
	assert.InDelta(t, 230.0, *obs.WindDirDeg, 1e-9)
}

func TestToObservation_MetersPerSecond(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	var resp ObservationResponse
	resp.Properties.WindSpeed = QuantitativeValue{UnitCode: "wmoUnit:m_s-1", Value: f(10)}

	obs := ToObservation(&resp)

	require.NotNil(t, obs.WindMPH)
	assert.InDelta(t, 22.37, *obs.WindMPH, 0.01)
	assert.Nil(t, obs.TempF)
	assert.Nil(t, obs.WindDirDeg)
}

func TestToObservation_Nil(t *testing.T) {
	assert.Nil(t, ToObservation(nil))
}
