package pde

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectWind_Priority(t *testing.T) {
	obs := &Wind{SpeedMPH: 12, DirFromDeg: 200}
	gridded := &Wind{SpeedMPH: 8, DirFromDeg: 90}

	assert.Equal(t, *obs, SelectWind(obs, gridded))
	assert.Equal(t, *gridded, SelectWind(nil, gridded))

	def := SelectWind(nil, nil)
	assert.Equal(t, 5.0, def.SpeedMPH)
	assert.Equal(t, 270.0, def.DirFromDeg)
}

func TestSpeedFromWind(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"typical", 10, 2.0},
		{"scaled", 5, 1.0},
		{"clamped low", 0, 0.1},
		{"calm clamps low", 0.2, 0.1},
		{"clamped high", 50, 2.0},
		{"negative uses magnitude", -10, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SpeedFromWind(tt.speed), 1e-9)
		})
	}
}

func TestVelocityFromWind(t *testing.T) {
	tests := []struct {
		name   string
		wind   Wind
		wantCX float64
		wantCY float64
	}{
		// Wind from the west blows east: +x, no y.
		{"westerly", Wind{SpeedMPH: 5, DirFromDeg: 270}, 1, 0},
		// Wind from the north blows south: grid y grows downward, so +y.
		{"northerly", Wind{SpeedMPH: 5, DirFromDeg: 0}, 0, 1},
		// Wind from the east blows west.
		{"easterly", Wind{SpeedMPH: 5, DirFromDeg: 90}, -1, 0},
		// Wind from the south blows north: -y on the grid.
		{"southerly", Wind{SpeedMPH: 5, DirFromDeg: 180}, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := VelocityFromWind(tt.wind)
			assert.InDelta(t, tt.wantCX, cx, 1e-9)
			assert.InDelta(t, tt.wantCY, cy, 1e-9)
		})
	}
}

func TestVelocityFromWind_SpeedPreserved(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 30 {
		cx, cy := VelocityFromWind(Wind{SpeedMPH: 10, DirFromDeg: deg})
		assert.InDelta(t, 2.0, math.Hypot(cx, cy), 1e-9, "direction %v", deg)
	}
}
