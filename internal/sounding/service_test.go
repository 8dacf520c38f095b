package sounding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaginasean/weather-modeling/pkg/logger"
)

type captureArchive struct {
	saved []*Sounding
}

func (a *captureArchive) SaveSounding(s *Sounding) error {
	a.saved = append(a.saved, s)
	return nil
}

func (a *captureArchive) RecentSoundings(stationID, limit int) ([]*Sounding, error) {
	var out []*Sounding
	for i := len(a.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if a.saved[i].StationID == stationID {
			out = append(out, a.saved[i])
		}
	}
	return out, nil
}

func newTestService(t *testing.T, upstream http.HandlerFunc, archive Archiver) *Service {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := DefaultServiceConfig()
	cfg.Wyoming.BaseURL = srv.URL
	return NewService(cfg, archive, logger.NewNop())
}

func TestGetSounding_FetchesAndArchives(t *testing.T) {
	var requests int
	archive := &captureArchive{}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(sampleListing))
	}, archive)

	snd := svc.GetSounding(context.Background(), 27.95, -82.46)

	require.NotNil(t, snd)
	assert.Equal(t, "uwyo", snd.Source)
	assert.Equal(t, "1200", snd.FromTime)
	assert.Equal(t, 72214, snd.StationID)
	assert.Len(t, snd.Profile, 5)
	assert.InDelta(t, 1432.10, snd.CAPEJkg, 1e-9)
	require.NotNil(t, snd.Features)
	require.Len(t, archive.saved, 1)
	assert.Equal(t, 1, requests)
}

func TestGetSounding_CachesSecondCall(t *testing.T) {
	var requests int
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(sampleListing))
	}, nil)

	first := svc.GetSounding(context.Background(), 27.95, -82.46)
	second := svc.GetSounding(context.Background(), 27.95, -82.46)

	assert.Same(t, first, second)
	assert.Equal(t, 1, requests)
}

func TestGetSounding_DemoFallback(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)

	snd := svc.GetSounding(context.Background(), 27.95, -82.46)

	require.NotNil(t, snd)
	assert.Equal(t, "demo", snd.Source)
	require.NotNil(t, snd.Features)
}

func TestGetSounding_ShortProfileFallsBack(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   PRES   HGHT   TEMP   DWPT\n 1000.0 130 25.8 23.6\n"))
	}, nil)

	snd := svc.GetSounding(context.Background(), 27.95, -82.46)
	assert.Equal(t, "demo", snd.Source)
}

func TestHistory(t *testing.T) {
	archive := &captureArchive{}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleListing))
	}, archive)

	// A successful fetch archives the sounding, which history then serves.
	svc.GetSounding(context.Background(), 27.95, -82.46)

	station, past, err := svc.History(27.95, -82.46, 0)
	require.NoError(t, err)
	assert.Equal(t, 72214, station.ID)
	require.Len(t, past, 1)
	assert.Equal(t, "uwyo", past[0].Source)
}

func TestHistory_NoArchive(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)

	station, past, err := svc.History(27.95, -82.46, 5)
	require.NoError(t, err)
	assert.Equal(t, 72214, station.ID)
	assert.Empty(t, past)
}

func TestNearestStation(t *testing.T) {
	assert.Equal(t, 72214, NearestStation(27.95, -82.46).ID)
	assert.Equal(t, 72215, NearestStation(25.8, -80.2).ID)
	assert.Equal(t, 72797, NearestStation(48.0, -124.0).ID)
}
