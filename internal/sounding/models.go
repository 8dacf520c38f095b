package sounding

// ProfileRow is one level of a vertical profile, ordered surface-first
// (highest pressure) to aloft (lowest pressure).
type ProfileRow struct {
	PressureHPa float64 `json:"p_hpa"`
	TempC       float64 `json:"T_C"`
	DewpointC   float64 `json:"Td_C"`
}

// DryLayer is a contiguous run of levels with large temperature-dewpoint
// spread. Top is the run's surface-most pressure, Bottom its highest level.
type DryLayer struct {
	TopHPa     float64 `json:"top_hpa"`
	BottomHPa  float64 `json:"bottom_hpa"`
	AvgSpreadC float64 `json:"avg_spread_c"`
}

// Features are the structural profile features derived locally. Nil pressure
// fields mean "no finding". CAPE/CIN are not part of this struct: they are
// externally computed stability indices carried on the Sounding itself.
type Features struct {
	FreezingLevelHPa   *float64   `json:"freezing_level_hpa,omitempty"`
	FreezingLevelEstim bool       `json:"freezing_level_estimated,omitempty"`
	InversionHPa       *float64   `json:"inversion_hpa,omitempty"`
	DryLayers          []DryLayer `json:"dry_layers,omitempty"`
}

// Sounding is a complete vertical-profile product: the profile rows, the
// externally supplied stability indices, and the locally derived features.
type Sounding struct {
	Source     string       `json:"source"`
	StationID  int          `json:"station_id,omitempty"`
	StationLat float64      `json:"station_lat,omitempty"`
	StationLon float64      `json:"station_lon,omitempty"`
	FromTime   string       `json:"from_time,omitempty"`
	CAPEJkg    float64      `json:"cape_j_kg"`
	CINJkg     float64      `json:"cin_j_kg"`
	Profile    []ProfileRow `json:"profile"`
	Features   *Features    `json:"features,omitempty"`
}
