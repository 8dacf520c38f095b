package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imaginasean/weather-modeling/internal/glossary"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// GetSounding returns the observed sounding nearest to the requested
// location, or the demo profile when no observed sounding is available. The
// payload always carries analyzed features.
func (h *Handler) GetSounding(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}

	s := h.soundingService.GetSounding(r.Context(), lat, lon)
	WriteJSON(w, http.StatusOK, s)
}

// GetSoundingHistory returns past archived soundings for the station nearest
// to the requested location, newest first.
func (h *Handler) GetSoundingHistory(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := h.coordinates(r)
	if err != nil {
		http.Error(w, "Invalid lat/lon parameters", http.StatusBadRequest)
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
		return
	}

	station, past, err := h.soundingService.History(lat, lon, limit)
	if err != nil {
		h.logger.Error("Sounding history read failed", logger.Error(err))
		http.Error(w, "Failed to read sounding history", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"station_id": station.ID,
		"count":      len(past),
		"soundings":  past,
	})
}

// GetGlossary returns all glossary entries grouped by category.
func (h *Handler) GetGlossary(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, glossary.ByCategory())
}

// GetGlossaryTerm returns a single glossary entry by term.
func (h *Handler) GetGlossaryTerm(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	entry, ok := glossary.Lookup(term)
	if !ok {
		http.Error(w, "Term not found", http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}
