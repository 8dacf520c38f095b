package sounding

import "math"

// Station is a WMO upper-air (rawinsonde) station.
type Station struct {
	ID  int
	Lat float64
	Lon float64
}

// upperAirStations is the US rawinsonde network used to resolve the nearest
// observed sounding for a location.
var upperAirStations = []Station{
	{72215, 25.8, -80.3},    // Miami
	{72202, 24.55, -81.75},  // Key West
	{72210, 30.23, -81.88},  // Jacksonville
	{72214, 28.43, -80.57},  // Cape Canaveral
	{72220, 32.9, -80.03},   // Charleston
	{72305, 35.22, -80.95},  // Charlotte
	{72317, 35.87, -78.78},  // Raleigh
	{72403, 38.85, -77.03},  // Washington DC
	{72402, 39.18, -76.67},  // Baltimore
	{74486, 40.78, -73.97},  // New York
	{72649, 43.65, -70.3},   // Portland ME
	{72501, 35.39, -97.6},   // Oklahoma City
	{72327, 36.25, -86.57},  // Nashville
	{72235, 30.49, -86.53},  // Eglin
	{72240, 32.9, -97.04},   // Fort Worth
	{72250, 29.98, -95.37},  // Houston
	{72469, 39.75, -104.87}, // Denver
	{72363, 35.04, -106.62}, // Albuquerque
	{72572, 40.78, -111.97}, // Salt Lake City
	{72489, 39.05, -95.65},  // Topeka
	{72528, 41.32, -95.9},   // Omaha
	{72672, 42.95, -87.9},   // Milwaukee
	{72645, 41.78, -87.75},  // Chicago
	{72694, 47.46, -111.38}, // Great Falls
	{72747, 45.7, -121.52},  // Portland OR
	{72797, 47.95, -124.55}, // Quillayute WA
	{72274, 33.43, -112.02}, // Phoenix
	{72293, 32.73, -117.19}, // San Diego
	{72288, 33.94, -118.4},  // Los Angeles
	{72201, 26.08, -80.15},  // Fort Lauderdale
}

// NearestStation returns the upper-air station closest to (lat, lon) by
// flat-earth degree distance, which is adequate at station-network scale.
func NearestStation(lat, lon float64) Station {
	best := upperAirStations[0]
	bestD := math.Inf(1)
	for _, s := range upperAirStations {
		d := (lat-s.Lat)*(lat-s.Lat) + (lon-s.Lon)*(lon-s.Lon)
		if d < bestD {
			bestD = d
			best = s
		}
	}
	return best
}
