// Package angles provides angular statistics for circular quantities such as
// wind direction. Naive linear math on compass degrees breaks across the
// 0/360 boundary; everything here works in the circular domain.
package angles

import "math"

// Normalize wraps an angle in degrees to [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// Mod can return 360 - epsilon rounding artifacts; clamp exact 360 to 0
	if d >= 360 {
		d -= 360
	}
	return d
}

// SignedDelta returns the shortest signed angular difference a - b in degrees,
// in the range [-180, 180).
func SignedDelta(a, b float64) float64 {
	return math.Mod(a-b+540, 360) - 180
}

// Blend combines two directions in the circular domain. Each direction is
// converted to a unit vector, the vectors are summed with the given weights,
// and the angle is recovered with the two-argument arctangent.
// weightA + weightB need not sum to 1; only their ratio matters.
// Returns a value in [0, 360).
func Blend(aDeg, bDeg, weightA, weightB float64) float64 {
	aRad := aDeg * math.Pi / 180
	bRad := bDeg * math.Pi / 180

	x := weightA*math.Cos(aRad) + weightB*math.Cos(bRad)
	y := weightA*math.Sin(aRad) + weightB*math.Sin(bRad)

	// Degenerate case: opposing vectors of equal weight cancel. Fall back to
	// the second (background) direction rather than returning an arbitrary 0.
	if math.Abs(x) < 1e-12 && math.Abs(y) < 1e-12 {
		return Normalize(bDeg)
	}

	return Normalize(math.Atan2(y, x) * 180 / math.Pi)
}

// BlowToFrom converts a meteorological "from" direction to the direction the
// wind blows toward.
func BlowToFrom(fromDeg float64) float64 {
	return Normalize(fromDeg + 180)
}
