// Package sqlite persists fetched soundings and observations so past
// products can be compared against later forecasts.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imaginasean/weather-modeling/internal/forecast"
	"github.com/imaginasean/weather-modeling/internal/sounding"
	"github.com/imaginasean/weather-modeling/pkg/logger"
	_ "modernc.org/sqlite"
)

// Archive is a SQLite-backed store for upstream products.
type Archive struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewArchive opens (or creates) the archive database at dbPath.
func NewArchive(dbPath string, log *logger.Logger) (*Archive, error) {
	archiveLogger := log.Named("sqlite")

	archiveLogger.Info("Initializing SQLite archive",
		logger.String("path", dbPath))

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Archive{db: db, logger: archiveLogger}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS soundings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		station_id INTEGER NOT NULL,
		source TEXT NOT NULL,
		from_time TEXT,
		cape_j_kg REAL,
		cin_j_kg REAL,
		profile TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_soundings_station ON soundings(station_id, fetched_at);

	CREATE TABLE IF NOT EXISTS observations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		station TEXT NOT NULL,
		observed_at TIMESTAMP NOT NULL,
		temp_f REAL,
		wind_mph REAL,
		wind_dir_deg REAL,
		fetched_at TIMESTAMP NOT NULL,
		UNIQUE(station, observed_at)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveSounding archives a fetched sounding. Demo soundings are not archived.
func (a *Archive) SaveSounding(s *sounding.Sounding) error {
	if s == nil || s.Source == "demo" {
		return nil
	}

	profile, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = a.db.Exec(
		`INSERT INTO soundings (station_id, source, from_time, cape_j_kg, cin_j_kg, profile, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.StationID, s.Source, s.FromTime, s.CAPEJkg, s.CINJkg, string(profile), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sounding: %w", err)
	}

	a.logger.Debug("Sounding archived",
		logger.Int("station", s.StationID),
		logger.String("from_time", s.FromTime))
	return nil
}

// SaveObservation archives a station observation. Re-fetching the same
// observation is a no-op.
func (a *Archive) SaveObservation(station string, obs *forecast.Observation) error {
	if obs == nil {
		return nil
	}

	_, err := a.db.Exec(
		`INSERT OR IGNORE INTO observations (station, observed_at, temp_f, wind_mph, wind_dir_deg, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		station, obs.Time.UTC(), nullable(obs.TempF), nullable(obs.WindMPH), nullable(obs.WindDirDeg), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}
	return nil
}

// RecentSoundings returns up to limit archived soundings for a station,
// newest first.
func (a *Archive) RecentSoundings(stationID, limit int) ([]*sounding.Sounding, error) {
	rows, err := a.db.Query(
		`SELECT source, from_time, cape_j_kg, cin_j_kg, profile
		 FROM soundings WHERE station_id = ? ORDER BY fetched_at DESC LIMIT ?`,
		stationID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query soundings: %w", err)
	}
	defer rows.Close()

	var out []*sounding.Sounding
	for rows.Next() {
		s := &sounding.Sounding{StationID: stationID}
		var profile string
		if err := rows.Scan(&s.Source, &s.FromTime, &s.CAPEJkg, &s.CINJkg, &profile); err != nil {
			return nil, fmt.Errorf("failed to scan sounding row: %w", err)
		}
		if err := json.Unmarshal([]byte(profile), &s.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode archived profile: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
