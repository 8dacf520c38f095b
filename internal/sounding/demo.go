package sounding

// DemoSounding returns a canned late-spring convective profile with fixed
// stability indices. Served when no real sounding can be fetched so the
// profile view always has something to draw.
func DemoSounding() *Sounding {
	s := &Sounding{
		Source:  "demo",
		CAPEJkg: 850.0,
		CINJkg:  -45.0,
		Profile: []ProfileRow{
			{1000, 24, 19},
			{950, 22, 17},
			{850, 15, 10},
			{700, 3, -2},
			{500, -20, -30},
			{400, -37, -45},
		},
	}
	// The demo profile is well-formed, so analysis cannot fail.
	s.Features, _ = AnalyzeProfile(s.Profile)
	return s
}
