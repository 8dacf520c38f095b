package forecast

import (
	"strconv"
	"strings"

	"github.com/imaginasean/weather-modeling/internal/angles"
)

// Unit conversion factors to display units.
const (
	KmhToMPH = 0.621371
	MsToMPH  = 2.236936

	// Gridded wind speeds without a unit code are disambiguated by magnitude:
	// values above this threshold are assumed km/h, below it m/s. This is a
	// heuristic and misreads values near the boundary; an explicit unit code
	// always wins when present.
	windSpeedUnitThreshold = 20.0
)

// CelsiusToFahrenheit converts a temperature to the display unit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// compassDegrees maps 16-point compass labels to degrees.
var compassDegrees = map[string]float64{
	"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
	"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
	"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
	"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
}

// parseWindDirection accepts either a compass label ("NE") or a numeric
// degree string and returns degrees in [0,360). The second return is false
// when the text is unparseable.
func parseWindDirection(text string) (float64, bool) {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}
	if deg, ok := compassDegrees[s]; ok {
		return deg, true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return angles.Normalize(v), true
	}
	return 0, false
}

// parseWindSpeed extracts a numeric mph value from period wind speed text.
// Handles plain numbers ("12"), unit-suffixed values ("12 mph"), and ranges
// ("10 to 15 mph", for which the first value is used).
func parseWindSpeed(text string) (float64, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// GriddedWindSpeedMPH converts a gridded wind speed to mph. The unit code
// is honored when supplied; otherwise the >20 magnitude heuristic applies.
func GriddedWindSpeedMPH(value float64, unitCode string) float64 {
	switch {
	case strings.Contains(unitCode, "km_h"):
		return value * KmhToMPH
	case strings.Contains(unitCode, "m_s"):
		return value * MsToMPH
	}
	if value > windSpeedUnitThreshold {
		return value * KmhToMPH
	}
	return value * MsToMPH
}
