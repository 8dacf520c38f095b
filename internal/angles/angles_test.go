package angles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 123.4, 123.4},
		{"exactly 360", 360, 0},
		{"above 360", 370, 10},
		{"negative", -10, 350},
		{"large negative", -730, 350},
		{"large positive", 1085, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.in), 1e-9)
		})
	}
}

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"no difference", 90, 90, 0},
		{"simple ahead", 100, 90, 10},
		{"simple behind", 90, 100, -10},
		{"across north forward", 10, 350, 20},
		{"across north backward", 350, 10, -20},
		{"opposite", 180, 0, -180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SignedDelta(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSignedDelta_Range(t *testing.T) {
	for a := 0.0; a < 360; a += 7.3 {
		for b := 0.0; b < 360; b += 11.9 {
			d := SignedDelta(a, b)
			assert.GreaterOrEqual(t, d, -180.0)
			assert.Less(t, d, 180.0)
		}
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name             string
		a, b             float64
		weightA, weightB float64
		want             float64
	}{
		{"all weight on a", 90, 270, 1, 0, 90},
		{"all weight on b", 90, 270, 0, 1, 270},
		{"equal weights midpoint", 80, 100, 0.5, 0.5, 90},
		{"across north", 350, 10, 0.5, 0.5, 0},
		{"unnormalized weights", 80, 100, 2, 2, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Blend(tt.a, tt.b, tt.weightA, tt.weightB), 1e-6)
		})
	}
}

func TestBlend_OpposingCancellation(t *testing.T) {
	// Equal-weight opposite vectors cancel; the background direction wins.
	assert.InDelta(t, 180.0, Blend(0, 180, 0.5, 0.5), 1e-9)
}

func TestBlowToFrom(t *testing.T) {
	assert.InDelta(t, 90.0, BlowToFrom(270), 1e-9)
	assert.InDelta(t, 180.0, BlowToFrom(0), 1e-9)
	assert.InDelta(t, 0.0, BlowToFrom(180), 1e-9)
	assert.InDelta(t, 170.0, BlowToFrom(350), 1e-9)
}
