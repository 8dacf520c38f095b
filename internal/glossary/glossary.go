// Package glossary holds the educational term definitions served for
// tooltips and the glossary panel.
package glossary

import "strings"

// Entry is one glossary term.
type Entry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
}

// Entries is the full glossary, ordered roughly from basics to modeling
// concepts.
var Entries = []Entry{
	{"forecast", "A prediction of what the weather will be at a place and time, based on models and recent observations.", "Data & forecast basics"},
	{"observation", "A real measurement (temperature, wind, etc.) from a sensor or station right now or in the past.", "Data & forecast basics"},
	{"station", "A fixed location (e.g. airport or buoy) where weather is measured and reported.", "Data & forecast basics"},
	{"dew point", "The temperature at which air would get saturated and dew forms; higher often means stickier, more humid air.", "Data & forecast basics"},
	{"wind chill", "\"Feels like\" temperature when wind blows on skin; stronger wind makes cold feel colder.", "Data & forecast basics"},
	{"heat index", "\"Feels like\" temperature in hot, humid conditions; humidity makes heat feel more intense.", "Data & forecast basics"},
	{"precipitation chance", "The probability (e.g. 30%) that measurable rain or snow will fall at that location in the given period.", "Data & forecast basics"},
	{"watch vs warning", "A watch means conditions are possible; a warning means they're happening or imminent—take action.", "Data & forecast basics"},
	{"NDFD", "National Digital Forecast Database; the NWS's gridded blend of human and model forecasts.", "Data & forecast basics"},
	{"GFS", "Global Forecast System; NOAA's global weather model that runs every 6 hours.", "Data & forecast basics"},
	{"bias correction", "Adjusting model output so it matches past observations on average (e.g. if the model is usually 2°F too warm, subtract 2°F).", "Post-processing"},
	{"downscaling", "Taking coarser model data and refining it to a finer grid or location so local detail is better.", "Post-processing"},
	{"ensemble", "Many slightly different model runs used together to show a range of possible outcomes instead of one single forecast.", "Post-processing"},
	{"spread", "How much the ensemble members differ; large spread often means more uncertainty.", "Post-processing"},
	{"percentile", "A value that a given percent of outcomes fall below (e.g. 90th percentile temperature = warmer than 90% of ensemble members).", "Post-processing"},
	{"raw vs corrected", "Raw is direct model output; corrected is after bias correction or other post-processing.", "Post-processing"},
	{"advection", "Something (e.g. temperature or moisture) being carried along by the wind.", "Simple physics"},
	{"diffusion", "Smoothing or spreading of a quantity (e.g. heat or smoke) from areas of high to low concentration.", "Simple physics"},
	{"sounding", "A vertical profile of the atmosphere (temperature, humidity, wind vs height) from a balloon or model.", "Simple physics"},
	{"skew-T", "A standard chart that shows a sounding; used to read stability and moisture with height.", "Simple physics"},
	{"CAPE", "Convective Available Potential Energy; a measure of how much \"fuel\" the atmosphere has for thunderstorms (higher = more potential).", "Simple physics"},
	{"CIN", "Convective Inhibition; a \"lid\" that can prevent storms from forming even when CAPE is present.", "Simple physics"},
	{"stability", "Whether air tends to stay in place (stable) or rise and form clouds/storms (unstable).", "Simple physics"},
	{"parcel", "A hypothetical blob of air that we track (e.g. lift it and see if it keeps rising) to understand stability.", "Simple physics"},
	{"freezing level", "The height (or pressure level) where the temperature crosses 0°C; matters for rain vs snow and icing.", "Simple physics"},
	{"inversion", "A layer where temperature increases with height, trapping air and pollutants below it.", "Simple physics"},
	{"primitive equations", "The core physics equations (motion, mass, energy) that full weather models solve to predict the atmosphere.", "NWP concepts"},
	{"pressure level", "A horizontal slice of the atmosphere at a fixed pressure (e.g. 500 mb), often used instead of height.", "NWP concepts"},
	{"boundary conditions", "Values at the edges of the model domain, usually from a larger model like GFS, that \"drive\" your run.", "NWP concepts"},
	{"data assimilation", "Blending new observations into the model's state so the forecast starts from a more accurate picture.", "NWP concepts"},
	{"cross-section", "A vertical slice through the atmosphere (e.g. along a line) showing how a variable changes with height and distance.", "NWP concepts"},
	{"model run", "One execution of the numerical model from a start time, producing a forecast over a set period.", "NWP concepts"},
}

// ByCategory groups the glossary entries by category, preserving insertion
// order within each group.
func ByCategory() map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range Entries {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// Lookup returns the entry for a term, case-insensitively. The second return
// is false when the term is unknown.
func Lookup(term string) (Entry, bool) {
	key := strings.ToLower(strings.TrimSpace(term))
	for _, e := range Entries {
		if strings.ToLower(e.Term) == key {
			return e, true
		}
	}
	return Entry{}, false
}
