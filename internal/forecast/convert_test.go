package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.InDelta(t, 32.0, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212.0, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, CelsiusToFahrenheit(-40), 1e-9)
}

func TestParseWindDirection(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"N", 0, true},
		{"ne", 45, true},
		{" SSW ", 202.5, true},
		{"270", 270, true},
		{"-90", 270, true},
		{"365", 5, true},
		{"", 0, false},
		{"variable", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseWindDirection(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if ok {
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.in)
		}
	}
}

func TestParseWindSpeed(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{"12 mph", 12, true},
		{"10 to 15 mph", 10, true},
		{"", 0, false},
		{"calm", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseWindSpeed(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestGriddedWindSpeedMPH(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unitCode string
		want     float64
	}{
		{"explicit km/h", 10, "wmoUnit:km_h-1", 10 * KmhToMPH},
		{"explicit m/s", 30, "wmoUnit:m_s-1", 30 * MsToMPH},
		{"heuristic small is m/s", 10, "", 10 * MsToMPH},
		{"heuristic large is km/h", 30, "", 30 * KmhToMPH},
		{"unit code beats heuristic", 30, "wmoUnit:m_s-1", 30 * MsToMPH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GriddedWindSpeedMPH(tt.value, tt.unitCode), 1e-6)
		})
	}
}
